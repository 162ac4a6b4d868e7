package smooth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/quad"
	"github.com/proxreg/proxreg/seminorm"
)

// smoothedAtom is the Moreau envelope of a nonsmooth atom: a smooth
// stand-in whose minimizers approach the original's as eps shrinks.
type smoothedAtom struct {
	direct seminorm.Atom // prox-capable original; nil on the transform route
	core   seminorm.Atom // transform-free core, transform route only
	t      affine.Transform
	q      *quad.Term // ambient quadratic carried by the original, transform route only
	eps    float64
	dim    int
	z      []float64 // prox point scratch
	y      []float64 // transform image scratch
}

// Smoothed replaces a nonsmooth atom with its Moreau envelope at
// temperature eps > 0:
//
//	env_ε(h)(x) = min_z { h(z) + ‖x − z‖²/(2ε) } = h(z*) + ‖x − z*‖²/(2ε)
//
// with z* = prox_{h,ε}(x) and ∇env_ε(h)(x) = (x − z*)/ε, which is
// (1/ε)-Lipschitz. Prox-capable atoms are enveloped directly — their
// offsets and quadratic terms fold through the prox. An atom composed
// with a general transform T smooths through its decomposition instead:
// env_ε(core)(T·x) with gradient Tᵀ·u*, Lipschitz ‖T‖²/ε, the ambient
// quadratic added unsmoothed. Solver steps must shrink with eps;
// continuation rescales the Lipschitz estimate between levels for this.
func Smoothed(h seminorm.Atom, eps float64) (Atom, error) {
	if h == nil {
		return nil, fmt.Errorf("smooth: Smoothed: %w", ErrNilAtom)
	}
	if eps <= 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		return nil, fmt.Errorf("smooth: Smoothed: epsilon %v: %w", eps, ErrBadEpsilon)
	}
	if h.ProxCapable() {
		return &smoothedAtom{
			direct: h,
			eps:    eps,
			dim:    h.Dim(),
			z:      make([]float64, h.Dim()),
		}, nil
	}
	core, tr := h.Decompose()
	if core == nil || tr == nil || !core.ProxCapable() {
		return nil, fmt.Errorf("smooth: Smoothed: no proximal route through the atom: %w",
			seminorm.ErrNotProxCapable)
	}

	return &smoothedAtom{
		core: core,
		t:    tr,
		q:    h.Quadratic(),
		eps:  eps,
		dim:  h.Dim(),
		z:    make([]float64, core.Dim()),
		y:    make([]float64, core.Dim()),
	}, nil
}

func (f *smoothedAtom) Dim() int { return f.dim }

func (f *smoothedAtom) ValueGrad(x, grad []float64) (float64, error) {
	if err := checkOperands(x, grad, f.dim); err != nil {
		return 0, err
	}
	if f.direct != nil {
		return f.envelopeDirect(x, grad)
	}

	return f.envelopeComposed(x, grad)
}

func (f *smoothedAtom) envelopeDirect(x, grad []float64) (float64, error) {
	z, err := f.direct.Prox(f.z, x, f.eps)
	if err != nil {
		return 0, fmt.Errorf("smooth: Smoothed: %w", err)
	}
	hv, err := f.direct.Value(z)
	if err != nil {
		return 0, fmt.Errorf("smooth: Smoothed: %w", err)
	}
	var dist2 float64
	if grad != nil {
		floats.SubTo(grad, x, z)
		dist2 = floats.Dot(grad, grad)
		floats.Scale(1/f.eps, grad)
	} else {
		for i, xi := range x {
			d := xi - z[i]
			dist2 += d * d
		}
	}

	return hv + dist2/(2*f.eps), nil
}

func (f *smoothedAtom) envelopeComposed(x, grad []float64) (float64, error) {
	y, err := f.t.Apply(f.y, x)
	if err != nil {
		return 0, fmt.Errorf("smooth: Smoothed: %w", err)
	}
	z, err := f.core.Prox(f.z, y, f.eps)
	if err != nil {
		return 0, fmt.Errorf("smooth: Smoothed: %w", err)
	}
	hv, err := f.core.Value(z)
	if err != nil {
		return 0, fmt.Errorf("smooth: Smoothed: %w", err)
	}
	// y becomes the scaled dual point u* = (y − z*)/ε.
	floats.Sub(y, z)
	dist2 := floats.Dot(y, y)
	v := hv + dist2/(2*f.eps) + f.q.Objective(x)
	if grad != nil {
		floats.Scale(1/f.eps, y)
		if _, err := f.t.ApplyAdjoint(grad, y); err != nil {
			return 0, fmt.Errorf("smooth: Smoothed: %w", err)
		}
		f.q.AddGradient(grad, x)
	}

	return v, nil
}
