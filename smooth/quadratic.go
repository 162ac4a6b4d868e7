package smooth

import (
	"fmt"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/quad"
)

// quadLoss is the weighted squared-error loss on coordinates:
//
//	f(x) = (1/2)·Σ_i w_i·(x_i − target_i)².
type quadLoss struct {
	target  []float64
	weights []float64 // nil means unit weights
	q       *quad.Term
}

// Quadratic builds the coordinate squared-error loss
// (1/2)·Σ w_i·(x_i − target_i)². Options: WithWeights, WithQuadratic.
// Compose with a design transform via LeastSquares for the regression
// form.
func Quadratic(target []float64, opts ...Option) (Atom, error) {
	if len(target) == 0 {
		return nil, fmt.Errorf("smooth: Quadratic: empty target: %w", ErrBadData)
	}
	cfg, err := parse(len(target), opts)
	if err != nil {
		return nil, err
	}
	if cfg.trials != nil {
		return nil, fmt.Errorf("smooth: Quadratic: trials belong to the logistic loss: %w", ErrBadData)
	}
	if err := cfg.quadratic.Check(len(target)); err != nil {
		return nil, fmt.Errorf("smooth: Quadratic: quadratic: %w", ErrDimensionMismatch)
	}

	return &quadLoss{
		target:  append([]float64(nil), target...),
		weights: append([]float64(nil), cfg.weights...),
		q:       cfg.quadratic,
	}, nil
}

// SignalApproximator is Quadratic under its signal-processing name: the
// identity-design least squares (1/2)·Σ w_i·(x_i − b_i)².
func SignalApproximator(b []float64, opts ...Option) (Atom, error) {
	return Quadratic(b, opts...)
}

func (f *quadLoss) Dim() int { return len(f.target) }

func (f *quadLoss) ValueGrad(x, grad []float64) (float64, error) {
	if err := checkOperands(x, grad, len(f.target)); err != nil {
		return 0, err
	}
	var v float64
	for i, xi := range x {
		r := xi - f.target[i]
		w := 1.0
		if f.weights != nil {
			w = f.weights[i]
		}
		v += 0.5 * w * r * r
		if grad != nil {
			grad[i] = w * r
		}
	}
	v += f.q.Objective(x)
	if grad != nil {
		f.q.AddGradient(grad, x)
	}

	return v, nil
}

// LeastSquares builds the regression loss (1/2)·Σ w_i·((A·x − b)_i)²:
// the quadratic loss pre-composed with the design transform. Weights
// ride on observations; WithQuadratic lands in coefficient space.
func LeastSquares(a affine.Transform, b []float64, opts ...Option) (Atom, error) {
	if a == nil {
		return nil, fmt.Errorf("smooth: LeastSquares: nil design: %w", ErrNilAtom)
	}
	out, _ := a.Dims()
	if len(b) != out {
		return nil, fmt.Errorf("smooth: LeastSquares: response length %d, design output %d: %w",
			len(b), out, ErrDimensionMismatch)
	}
	cfg, err := parse(out, opts)
	if err != nil {
		return nil, err
	}
	if cfg.trials != nil {
		return nil, fmt.Errorf("smooth: LeastSquares: trials belong to the logistic loss: %w", ErrBadData)
	}
	base, err := Quadratic(b, WithWeights(cfg.weights))
	if err != nil {
		return nil, err
	}

	return newComposed(base, a, nil, cfg.quadratic)
}
