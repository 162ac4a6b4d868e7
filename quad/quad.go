package quad

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDimensionMismatch indicates Center or Linear whose length
	// disagrees with the ambient dimension.
	ErrDimensionMismatch = errors.New("quad: dimension mismatch")

	// ErrBadCoef rejects a negative or non-finite quadratic coefficient
	// (convexity requires Coef ≥ 0).
	ErrBadCoef = errors.New("quad: negative or non-finite coefficient")

	// ErrBadStep rejects a non-positive step in ProxShift.
	ErrBadStep = errors.New("quad: non-positive step")
)

// Term is the identity quadratic
//
//	q(x) = (Coef/2)·‖x − Center‖² + ⟨Linear, x⟩ + Constant.
//
// A nil Center or Linear stands for the zero vector. Terms are value
// objects: construct once, never mutate. A nil *Term is the zero
// function and is accepted by every method.
type Term struct {
	Coef     float64
	Center   []float64
	Linear   []float64
	Constant float64
}

// New builds a Term, copying center and linear. Coef must be
// nonnegative and finite.
func New(coef float64, center, linear []float64, constant float64) (*Term, error) {
	if coef < 0 || math.IsNaN(coef) || math.IsInf(coef, 0) {
		return nil, fmt.Errorf("quad: New: coef %v: %w", coef, ErrBadCoef)
	}
	if len(center) > 0 && len(linear) > 0 && len(center) != len(linear) {
		return nil, fmt.Errorf("quad: New: center length %d, linear length %d: %w",
			len(center), len(linear), ErrDimensionMismatch)
	}
	t := &Term{Coef: coef, Constant: constant}
	if len(center) > 0 {
		t.Center = append([]float64(nil), center...)
	}
	if len(linear) > 0 {
		t.Linear = append([]float64(nil), linear...)
	}

	return t, nil
}

// Check validates the term against ambient dimension n.
func (q *Term) Check(n int) error {
	if q == nil {
		return nil
	}
	if q.Center != nil && len(q.Center) != n {
		return fmt.Errorf("quad: Check: center length %d, want %d: %w", len(q.Center), n, ErrDimensionMismatch)
	}
	if q.Linear != nil && len(q.Linear) != n {
		return fmt.Errorf("quad: Check: linear length %d, want %d: %w", len(q.Linear), n, ErrDimensionMismatch)
	}

	return nil
}

// IsZero reports whether the term is structurally zero. A Term whose
// Linear happens to hold only zeros is not detected; construct with nil
// slices to mean absence.
func (q *Term) IsZero() bool {
	return q == nil || (q.Coef == 0 && len(q.Linear) == 0 && q.Constant == 0)
}

// Objective evaluates q(x). Lengths must have been validated with Check.
func (q *Term) Objective(x []float64) float64 {
	if q == nil {
		return 0
	}
	v := q.Constant
	if q.Coef != 0 {
		var ss float64
		if q.Center == nil {
			ss = floats.Dot(x, x)
		} else {
			for i, xi := range x {
				d := xi - q.Center[i]
				ss += d * d
			}
		}
		v += 0.5 * q.Coef * ss
	}
	if q.Linear != nil {
		v += floats.Dot(q.Linear, x)
	}

	return v
}

// AddGradient accumulates ∇q(x) = Coef·(x − Center) + Linear into dst.
func (q *Term) AddGradient(dst, x []float64) {
	if q == nil {
		return
	}
	if q.Coef != 0 {
		if q.Center == nil {
			floats.AddScaled(dst, q.Coef, x)
		} else {
			for i, xi := range x {
				dst[i] += q.Coef * (xi - q.Center[i])
			}
		}
	}
	if q.Linear != nil {
		floats.Add(dst, q.Linear)
	}
}

// Collapsed rewrites the term with the center folded into the linear
// part: same function, Center == nil. Useful before summing terms.
func (q *Term) Collapsed() *Term {
	if q == nil {
		return nil
	}
	out := &Term{Coef: q.Coef, Constant: q.Constant}
	if q.Linear != nil {
		out.Linear = append([]float64(nil), q.Linear...)
	}
	if q.Center == nil || q.Coef == 0 {
		return out
	}
	if out.Linear == nil {
		out.Linear = make([]float64, len(q.Center))
	}
	floats.AddScaled(out.Linear, -q.Coef, q.Center)
	out.Constant += 0.5 * q.Coef * floats.Dot(q.Center, q.Center)

	return out
}

// Add returns a fresh collapsed term equal to a + b. Either operand may
// be nil. Linear parts of different lengths are rejected.
func Add(a, b *Term) (*Term, error) {
	if a.IsZero() {
		return b.Collapsed(), nil
	}
	if b.IsZero() {
		return a.Collapsed(), nil
	}
	ca, cb := a.Collapsed(), b.Collapsed()
	if ca.Linear != nil && cb.Linear != nil && len(ca.Linear) != len(cb.Linear) {
		return nil, fmt.Errorf("quad: Add: linear lengths %d and %d: %w",
			len(ca.Linear), len(cb.Linear), ErrDimensionMismatch)
	}
	out := &Term{Coef: ca.Coef + cb.Coef, Constant: ca.Constant + cb.Constant}
	switch {
	case ca.Linear == nil:
		out.Linear = cb.Linear
	case cb.Linear == nil:
		out.Linear = ca.Linear
	default:
		out.Linear = ca.Linear
		floats.Add(out.Linear, cb.Linear)
	}

	return out, nil
}

// ProxShift folds the term into a proximal subproblem. For any convex h,
//
//	argmin_z (1/(2·step))‖z − x‖² + q(z) + h(z) = prox_{h,s'}(w)
//
// with s' = step/(1 + step·Coef) and w = s'·(x/step + Coef·Center − Linear).
// dst receives w (nil allocates); the shrunken step s' is returned.
// A nil term passes x through unchanged at the original step.
func (q *Term) ProxShift(dst []float64, step float64, x []float64) (float64, []float64, error) {
	if step <= 0 || math.IsNaN(step) {
		return 0, nil, fmt.Errorf("quad: ProxShift: step %v: %w", step, ErrBadStep)
	}
	if dst == nil {
		dst = make([]float64, len(x))
	} else if len(dst) != len(x) {
		return 0, nil, fmt.Errorf("quad: ProxShift: dst length %d, want %d: %w", len(dst), len(x), ErrDimensionMismatch)
	}
	if q == nil || (q.Coef == 0 && q.Linear == nil) {
		copy(dst, x)

		return step, dst, nil
	}

	shrunk := step / (1 + step*q.Coef)
	inv := 1 / step
	for i, xi := range x {
		w := xi * inv
		if q.Coef != 0 && q.Center != nil {
			w += q.Coef * q.Center[i]
		}
		if q.Linear != nil {
			w -= q.Linear[i]
		}
		dst[i] = shrunk * w
	}

	return shrunk, dst, nil
}
