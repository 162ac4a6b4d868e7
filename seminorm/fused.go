package seminorm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/quad"
)

// TVProx writes the exact prox of t·‖D·‖₁ (one-dimensional total
// variation) into dst:
//
//	argmin_z (1/2)·‖z − y‖² + t·Σ|z_{i+1} − z_i|.
//
// Direct taut-string pass: two string bounds advance through the
// signal; when one must break, the finished segment is emitted and the
// scan restarts past it. Linear time on realistic signals, quadratic
// on adversarial ones. dst may alias y; t must be nonnegative.
func TVProx(dst, y []float64, t float64) ([]float64, error) {
	if t < 0 || math.IsNaN(t) {
		return nil, fmt.Errorf("seminorm: TVProx: weight %v: %w", t, ErrNegativeStep)
	}
	dst, err := ensureDst(dst, len(y))
	if err != nil {
		return nil, err
	}
	n := len(y)
	if n == 0 {
		return dst, nil
	}
	if t == 0 || n == 1 {
		copy(dst, y)

		return dst, nil
	}

	// Segment state: [k0..] is the unresolved segment; km and kp are the
	// last positions where the lower/upper string levels were refreshed;
	// vmin/vmax bracket the admissible segment level; umin/umax carry
	// the string tensions.
	var (
		k, k0, km, kp = 0, 0, 0, 0
		vmin, vmax    = y[0] - t, y[0] + t
		umin, umax    = t, -t
	)
	// restart re-seeds the state at position j after an emitted segment,
	// biased by the sign of the jump just committed.
	restart := func(j int, bias float64) {
		k, k0, km, kp = j, j, j, j
		vmin = y[j] + bias - t
		vmax = y[j] + bias + t
		umin, umax = t, -t
	}

	for {
		for k < n-1 {
			switch {
			case y[k+1]+umin < vmin-t:
				// Lower string breaks: the segment level is vmin and the
				// signal jumps down after km.
				for i := k0; i <= km; i++ {
					dst[i] = vmin
				}
				restart(km+1, t)
			case y[k+1]+umax > vmax+t:
				// Upper string breaks: level vmax, jump up after kp.
				for i := k0; i <= kp; i++ {
					dst[i] = vmax
				}
				restart(kp+1, -t)
			default:
				k++
				umin += y[k] - vmin
				umax += y[k] - vmax
				if umin >= t {
					vmin += (umin - t) / float64(k-k0+1)
					umin = t
					km = k
				}
				if umax <= -t {
					vmax += (umax + t) / float64(k-k0+1)
					umax = -t
					kp = k
				}
			}
		}

		// Last sample reached: either a string still has to break, or
		// the remaining segment levels out.
		switch {
		case umin < 0:
			for i := k0; i <= km; i++ {
				dst[i] = vmin
			}
			restart(km+1, t)
		case umax > 0:
			for i := k0; i <= kp; i++ {
				dst[i] = vmax
			}
			restart(kp+1, -t)
		default:
			v := vmin + umin/float64(k-k0+1)
			for i := k0; i < n; i++ {
				dst[i] = v
			}

			return dst, nil
		}
		if k == n-1 {
			// The fresh segment is the single last sample; its level is
			// the sample pulled by the committed jump's bias.
			dst[k] = vmin + umin

			return dst, nil
		}
	}
}

// FusedLassoProx writes the joint prox of tv·‖Dz‖₁ + l1·‖z − target‖₁:
// the total-variation prox followed by soft-thresholding toward the
// target. The composition is exact when the target is constant across
// coordinates (total variation is shift-invariant); for a general
// target it is the standard sequential approximation. A nil target
// shrinks toward the origin. tv and l1 already include the step factor.
func FusedLassoProx(dst, y []float64, tv, l1 float64, target []float64) ([]float64, error) {
	if target != nil && len(target) != len(y) {
		return nil, fmt.Errorf("seminorm: FusedLassoProx: target length %d, want %d: %w",
			len(target), len(y), ErrDimensionMismatch)
	}
	if l1 < 0 || math.IsNaN(l1) {
		return nil, fmt.Errorf("seminorm: FusedLassoProx: weight %v: %w", l1, ErrNegativeStep)
	}
	dst, err := TVProx(dst, y, tv)
	if err != nil {
		return nil, err
	}
	for i, v := range dst {
		var a float64
		if target != nil {
			a = target[i]
		}
		dst[i] = a + softThreshold(v-a, l1)
	}

	return dst, nil
}

// fusedAtom is λ·‖D(x − α)‖₁ over the first-difference operator, with
// the direct TVProx as its exact prox. Lagrange form only: projection
// onto a total-variation ball has no closed form.
type fusedAtom struct {
	dim    int
	mode   Mode
	offset []float64
	q      *quad.Term
	d      affine.Transform
	core   *coordAtom // L1 on differences, for Decompose/smoothing
}

// Fused builds the fused (total-variation) atom on R^dim, dim ≥ 2.
// Options: WithOffset (length dim), WithQuadratic. Bound form and
// WithTransform are rejected.
func Fused(dim int, mode Mode, opts ...Option) (Atom, error) {
	if dim < 2 {
		return nil, fmt.Errorf("seminorm: fused: dim %d: %w", dim, ErrBadDimension)
	}
	if err := mode.validate(); err != nil {
		return nil, err
	}
	if mode.IsBound() {
		return nil, fmt.Errorf("seminorm: fused: bound form has no closed projection: %w",
			ErrInvalidParametrization)
	}
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.transform != nil {
		return nil, fmt.Errorf("seminorm: fused: extra transform composition: %w",
			ErrInvalidParametrization)
	}
	if cfg.offset != nil && len(cfg.offset) != dim {
		return nil, fmt.Errorf("seminorm: fused: offset length %d, want %d: %w",
			len(cfg.offset), dim, ErrDimensionMismatch)
	}
	if err := cfg.quadratic.Check(dim); err != nil {
		return nil, fmt.Errorf("seminorm: fused: quadratic: %w", ErrDimensionMismatch)
	}

	d, err := affine.Difference(dim)
	if err != nil {
		return nil, fmt.Errorf("seminorm: fused: %w", err)
	}
	a := &fusedAtom{dim: dim, mode: mode, q: cfg.quadratic, d: d}
	if cfg.offset != nil {
		a.offset = append([]float64(nil), cfg.offset...)
	}

	// The decomposed core sees differences: λ·‖y − D·α‖₁ over y = Dx.
	var coreOffset []float64
	if a.offset != nil {
		if coreOffset, err = d.Apply(nil, a.offset); err != nil {
			return nil, fmt.Errorf("seminorm: fused: %w", err)
		}
	}
	if a.core, err = newCoord(l1Family{}, dim-1, mode, coreOffset); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *fusedAtom) Dim() int { return a.dim }

func (a *fusedAtom) Mode() Mode { return a.mode }

func (a *fusedAtom) Quadratic() *quad.Term { return a.q }

func (a *fusedAtom) ProxCapable() bool { return true }

func (a *fusedAtom) Decompose() (Atom, affine.Transform) { return a.core, a.d }

func (a *fusedAtom) Value(x []float64) (float64, error) {
	if len(x) != a.dim {
		return 0, fmt.Errorf("seminorm: fused Value: operand length %d, want %d: %w",
			len(x), a.dim, ErrDimensionMismatch)
	}
	var tv float64
	if a.offset == nil {
		for i := 0; i < a.dim-1; i++ {
			tv += math.Abs(x[i+1] - x[i])
		}
	} else {
		for i := 0; i < a.dim-1; i++ {
			tv += math.Abs((x[i+1] - a.offset[i+1]) - (x[i] - a.offset[i]))
		}
	}

	return a.mode.scalar*tv + a.q.Objective(x), nil
}

func (a *fusedAtom) Prox(dst, x []float64, step float64) ([]float64, error) {
	if len(x) != a.dim {
		return nil, fmt.Errorf("seminorm: fused Prox: operand length %d, want %d: %w",
			len(x), a.dim, ErrDimensionMismatch)
	}
	if step < 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("seminorm: fused Prox: step %v: %w", step, ErrNegativeStep)
	}
	dst, err := ensureDst(dst, a.dim)
	if err != nil {
		return nil, err
	}

	eff := step
	if step > 0 && !a.q.IsZero() {
		if eff, _, err = a.q.ProxShift(dst, step, x); err != nil {
			return nil, fmt.Errorf("seminorm: fused Prox: %w", err)
		}
	} else {
		copy(dst, x)
	}
	if a.offset != nil {
		floats.Sub(dst, a.offset)
	}
	if _, err = TVProx(dst, dst, eff*a.mode.scalar); err != nil {
		return nil, err
	}
	if a.offset != nil {
		floats.Add(dst, a.offset)
	}

	return dst, nil
}
