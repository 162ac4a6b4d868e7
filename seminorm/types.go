package seminorm

import (
	"fmt"
	"math"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/quad"
)

// DefaultBoundSlack is the relative feasibility slack for bound-form
// Value checks: ‖x‖ ≤ δ·(1+DefaultBoundSlack) still counts as inside.
// Iterates sit on the constraint boundary up to rounding, so an exact
// comparison would flip feasible points to +Inf.
const DefaultBoundSlack = 1e-8

// form discriminates the two parametrizations. The zero form is
// deliberately invalid: a Mode must come from Lagrange or Bound.
type form uint8

const (
	formInvalid form = iota
	formLagrange
	formBound
)

// Mode selects exactly one of the two parametrizations of a penalty
// family: Lagrange (penalty weight) or Bound (constraint radius).
// The zero Mode is invalid and rejected by every constructor.
type Mode struct {
	form   form
	scalar float64
}

// Lagrange parametrizes the penalty form λ·h(x).
func Lagrange(weight float64) Mode { return Mode{form: formLagrange, scalar: weight} }

// Bound parametrizes the constraint form, the indicator of {h(x) ≤ δ}.
func Bound(radius float64) Mode { return Mode{form: formBound, scalar: radius} }

// IsLagrange reports the penalty form.
func (m Mode) IsLagrange() bool { return m.form == formLagrange }

// IsBound reports the constraint form.
func (m Mode) IsBound() bool { return m.form == formBound }

// Scalar returns the penalty weight or constraint radius.
func (m Mode) Scalar() float64 { return m.scalar }

// String renders "lagrange(λ)" or "bound(δ)" for logs.
func (m Mode) String() string {
	switch m.form {
	case formLagrange:
		return fmt.Sprintf("lagrange(%g)", m.scalar)
	case formBound:
		return fmt.Sprintf("bound(%g)", m.scalar)
	default:
		return "invalid"
	}
}

func (m Mode) validate() error {
	if m.form == formInvalid {
		return fmt.Errorf("seminorm: zero Mode, use Lagrange or Bound: %w", ErrInvalidParametrization)
	}
	if m.scalar < 0 || math.IsNaN(m.scalar) || math.IsInf(m.scalar, 0) {
		return fmt.Errorf("seminorm: %s scalar must be nonnegative and finite: %w", m, ErrInvalidParametrization)
	}

	return nil
}

// Atom is a non-smooth objective term: a value and an exact proximal
// operator. Implementations are immutable after construction and safe
// for concurrent use.
type Atom interface {
	// Dim is the length of the coefficient vectors the atom accepts.
	Dim() int

	// Mode reports the active parametrization.
	Mode() Mode

	// Quadratic returns the atom's identity-quadratic term, nil if none.
	Quadratic() *quad.Term

	// ProxCapable reports whether Prox has a closed form. Atoms composed
	// with a general linear transform evaluate only.
	ProxCapable() bool

	// Value reports λ·h(x) plus the quadratic term in lagrange form; in
	// bound form it reports 0 (plus the quadratic) inside the constraint
	// and +Inf beyond the relative slack.
	Value(x []float64) (float64, error)

	// Prox writes argmin_z (1/(2·step))·‖z − x‖² + h(z) into dst (nil
	// allocates). Step 0 is the identity for lagrange forms and the pure
	// projection for bound forms. Negative steps are rejected.
	Prox(dst, x []float64, step float64) ([]float64, error)

	// Decompose splits the atom into its coordinate core and the linear
	// transform it is composed with; the transform is nil when the atom
	// acts on coordinates directly (core is the atom itself). Smoothing
	// uses this to place the Moreau envelope under the transform.
	Decompose() (Atom, affine.Transform)
}

// config collects constructor options before validation.
type config struct {
	offset    []float64
	quadratic *quad.Term
	transform affine.Transform
}

// Option customizes an atom at construction.
type Option func(*config)

// WithOffset penalizes h(x − α) instead of h(x). The slice is copied.
// Its length must match the family dimension (the transform output
// dimension when a transform is present).
func WithOffset(alpha []float64) Option {
	return func(c *config) { c.offset = alpha }
}

// WithQuadratic attaches an identity-quadratic term in ambient
// coordinates. It is added to Value and folded into Prox.
func WithQuadratic(q *quad.Term) Option {
	return func(c *config) { c.quadratic = q }
}

// WithTransform composes the penalty with a linear operator: h(T·x).
// Identity and gain transforms keep the closed-form prox; any other
// transform makes the atom evaluation-only (see ProxCapable).
func WithTransform(t affine.Transform) Option {
	return func(c *config) { c.transform = t }
}
