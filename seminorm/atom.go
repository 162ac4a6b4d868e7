package seminorm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/quad"
)

// L1 builds the ‖·‖₁ atom: soft-threshold prox in lagrange form,
// L1-ball projection in bound form.
func L1(dim int, mode Mode, opts ...Option) (Atom, error) {
	return newAtom(l1Family{}, dim, mode, opts...)
}

// L2 builds the ‖·‖₂ atom: block shrinkage in lagrange form, radial
// ball projection in bound form.
func L2(dim int, mode Mode, opts ...Option) (Atom, error) {
	return newAtom(l2Family{}, dim, mode, opts...)
}

// Sup builds the ‖·‖∞ atom: Moreau decomposition against the L1 ball
// in lagrange form, box clamp in bound form.
func Sup(dim int, mode Mode, opts ...Option) (Atom, error) {
	return newAtom(supFamily{}, dim, mode, opts...)
}

func newAtom(fam family, dim int, mode Mode, opts ...Option) (Atom, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("seminorm: %s: dim %d: %w", fam, dim, ErrBadDimension)
	}
	if err := mode.validate(); err != nil {
		return nil, err
	}
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.quadratic.Check(dim); err != nil {
		return nil, fmt.Errorf("seminorm: %s: quadratic: %w", fam, ErrDimensionMismatch)
	}

	if cfg.transform == nil {
		core, err := newCoord(fam, dim, mode, cfg.offset)
		if err != nil {
			return nil, err
		}
		core.q = cfg.quadratic

		return core, nil
	}

	out, in := cfg.transform.Dims()
	if in != dim {
		return nil, fmt.Errorf("seminorm: %s: transform input dim %d, atom dim %d: %w",
			fam, in, dim, ErrDimensionMismatch)
	}
	core, err := newCoord(fam, out, mode, cfg.offset)
	if err != nil {
		return nil, err
	}

	return &composed{core: core, t: cfg.transform, dim: dim, q: cfg.quadratic}, nil
}

// coordAtom is a family seminorm acting directly on coordinates.
// It is always prox-capable.
type coordAtom struct {
	fam    family
	dim    int
	mode   Mode
	offset []float64
	q      *quad.Term
}

func newCoord(fam family, dim int, mode Mode, offset []float64) (*coordAtom, error) {
	a := &coordAtom{fam: fam, dim: dim, mode: mode}
	if offset != nil {
		if len(offset) != dim {
			return nil, fmt.Errorf("seminorm: %s: offset length %d, want %d: %w",
				fam, len(offset), dim, ErrDimensionMismatch)
		}
		a.offset = append([]float64(nil), offset...)
	}

	return a, nil
}

func (a *coordAtom) Dim() int { return a.dim }

func (a *coordAtom) Mode() Mode { return a.mode }

func (a *coordAtom) Quadratic() *quad.Term { return a.q }

func (a *coordAtom) ProxCapable() bool { return true }

func (a *coordAtom) Decompose() (Atom, affine.Transform) { return a, nil }

func (a *coordAtom) Value(x []float64) (float64, error) {
	if len(x) != a.dim {
		return 0, fmt.Errorf("seminorm: %s Value: operand length %d, want %d: %w",
			a.fam, len(x), a.dim, ErrDimensionMismatch)
	}
	y := x
	if a.offset != nil {
		y = make([]float64, a.dim)
		floats.SubTo(y, x, a.offset)
	}
	if a.mode.IsBound() {
		if a.fam.norm(y) > a.mode.scalar*(1+DefaultBoundSlack) {
			return math.Inf(1), nil
		}

		return a.q.Objective(x), nil
	}

	return a.mode.scalar*a.fam.norm(y) + a.q.Objective(x), nil
}

func (a *coordAtom) Prox(dst, x []float64, step float64) ([]float64, error) {
	if len(x) != a.dim {
		return nil, fmt.Errorf("seminorm: %s Prox: operand length %d, want %d: %w",
			a.fam, len(x), a.dim, ErrDimensionMismatch)
	}
	dst, err := ensureDst(dst, a.dim)
	if err != nil {
		return nil, err
	}
	eff, err := a.stage(dst, x, step)
	if err != nil {
		return nil, err
	}
	if a.offset != nil {
		floats.Sub(dst, a.offset)
	}
	if a.mode.IsBound() {
		a.fam.project(dst, dst, a.mode.scalar)
	} else {
		a.fam.threshold(dst, dst, eff*a.mode.scalar)
	}
	if a.offset != nil {
		floats.Add(dst, a.offset)
	}

	return dst, nil
}

// stage validates step, folds the quadratic term, and leaves the
// shifted proximal point in dst, returning the effective step. At step
// zero the quadratic is dominated by the fidelity term and skipped.
func (a *coordAtom) stage(dst, x []float64, step float64) (float64, error) {
	if step < 0 || math.IsNaN(step) {
		return 0, fmt.Errorf("seminorm: %s Prox: step %v: %w", a.fam, step, ErrNegativeStep)
	}
	if step == 0 || a.q.IsZero() {
		copy(dst, x)

		return step, nil
	}
	eff, _, err := a.q.ProxShift(dst, step, x)
	if err != nil {
		return 0, fmt.Errorf("seminorm: %s Prox: %w", a.fam, err)
	}

	return eff, nil
}

// composed evaluates a coordinate atom through a linear transform:
// h(T·x). Gain-like transforms (c·I) keep the closed-form prox through
// the substitution prox_{h∘cI,s}(x) = (1/c)·prox_{h,s·c²}(c·x); general
// transforms evaluate only.
type composed struct {
	core *coordAtom
	t    affine.Transform
	dim  int
	q    *quad.Term
}

func (a *composed) Dim() int { return a.dim }

func (a *composed) Mode() Mode { return a.core.mode }

func (a *composed) Quadratic() *quad.Term { return a.q }

func (a *composed) ProxCapable() bool {
	c, ok := affine.Scale(a.t)

	return ok && c != 0
}

func (a *composed) Decompose() (Atom, affine.Transform) { return a.core, a.t }

func (a *composed) Value(x []float64) (float64, error) {
	if len(x) != a.dim {
		return 0, fmt.Errorf("seminorm: %s∘T Value: operand length %d, want %d: %w",
			a.core.fam, len(x), a.dim, ErrDimensionMismatch)
	}
	y, err := a.t.Apply(nil, x)
	if err != nil {
		return 0, fmt.Errorf("seminorm: %s∘T Value: %w", a.core.fam, err)
	}
	v, err := a.core.Value(y)
	if err != nil {
		return 0, err
	}

	return v + a.q.Objective(x), nil
}

func (a *composed) Prox(dst, x []float64, step float64) ([]float64, error) {
	if len(x) != a.dim {
		return nil, fmt.Errorf("seminorm: %s∘T Prox: operand length %d, want %d: %w",
			a.core.fam, len(x), a.dim, ErrDimensionMismatch)
	}
	if step < 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("seminorm: %s∘T Prox: step %v: %w", a.core.fam, step, ErrNegativeStep)
	}
	c, ok := affine.Scale(a.t)
	if !ok || c == 0 {
		return nil, fmt.Errorf("seminorm: %s∘T Prox: %w", a.core.fam, ErrNotProxCapable)
	}
	dst, err := ensureDst(dst, a.dim)
	if err != nil {
		return nil, err
	}

	eff := step
	if step > 0 && !a.q.IsZero() {
		if eff, _, err = a.q.ProxShift(dst, step, x); err != nil {
			return nil, fmt.Errorf("seminorm: %s∘T Prox: %w", a.core.fam, err)
		}
	} else {
		copy(dst, x)
	}

	floats.Scale(c, dst)
	if _, err = a.core.Prox(dst, dst, eff*c*c); err != nil {
		return nil, err
	}
	floats.Scale(1/c, dst)

	return dst, nil
}

// ensureDst validates or allocates a length-n destination buffer.
func ensureDst(dst []float64, n int) ([]float64, error) {
	if dst == nil {
		return make([]float64, n), nil
	}
	if len(dst) != n {
		return nil, fmt.Errorf("seminorm: dst length %d, want %d: %w", len(dst), n, ErrDimensionMismatch)
	}

	return dst, nil
}
