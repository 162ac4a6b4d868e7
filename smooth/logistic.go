package smooth

import (
	"fmt"
	"math"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/quad"
)

// logitLoss is the negative binomial log-likelihood on the linear
// predictor η:
//
//	f(η) = Σ_i w_i·(n_i·log(1 + e^{η_i}) − y_i·η_i)
//
// with successes y and trials n. Without trials every observation is a
// single Bernoulli trial and y_i ∈ [0, 1].
type logitLoss struct {
	successes []float64
	trials    []float64 // nil means one trial each
	weights   []float64 // nil means unit weights
	q         *quad.Term
}

// LogitLink builds the logistic loss directly on the linear predictor.
// Options: WithWeights, WithTrials, WithQuadratic. Compose with a
// design transform via Logistic for the regression form.
func LogitLink(successes []float64, opts ...Option) (Atom, error) {
	n := len(successes)
	if n == 0 {
		return nil, fmt.Errorf("smooth: LogitLink: empty successes: %w", ErrBadData)
	}
	cfg, err := parse(n, opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.quadratic.Check(n); err != nil {
		return nil, fmt.Errorf("smooth: LogitLink: quadratic: %w", ErrDimensionMismatch)
	}
	if cfg.trials != nil && len(cfg.trials) != n {
		return nil, fmt.Errorf("smooth: LogitLink: trials length %d, want %d: %w",
			len(cfg.trials), n, ErrDimensionMismatch)
	}
	for i, y := range successes {
		if y < 0 || math.IsNaN(y) {
			return nil, fmt.Errorf("smooth: LogitLink: successes[%d] = %g: %w", i, y, ErrBadData)
		}
		limit := 1.0
		if cfg.trials != nil {
			limit = cfg.trials[i]
			if limit <= 0 || math.IsNaN(limit) {
				return nil, fmt.Errorf("smooth: LogitLink: trials[%d] = %g: %w", i, limit, ErrBadData)
			}
		}
		if y > limit {
			return nil, fmt.Errorf("smooth: LogitLink: successes[%d] = %g exceed trials %g: %w",
				i, y, limit, ErrBadData)
		}
	}

	return &logitLoss{
		successes: append([]float64(nil), successes...),
		trials:    append([]float64(nil), cfg.trials...),
		weights:   append([]float64(nil), cfg.weights...),
		q:         cfg.quadratic,
	}, nil
}

func (f *logitLoss) Dim() int { return len(f.successes) }

func (f *logitLoss) ValueGrad(x, grad []float64) (float64, error) {
	if err := checkOperands(x, grad, len(f.successes)); err != nil {
		return 0, err
	}
	var v float64
	for i, eta := range x {
		y := f.successes[i]
		n, w := 1.0, 1.0
		if f.trials != nil {
			n = f.trials[i]
		}
		if f.weights != nil {
			w = f.weights[i]
		}
		v += w * (n*log1pExp(eta) - y*eta)
		if grad != nil {
			grad[i] = w * (n*sigmoid(eta) - y)
		}
	}
	v += f.q.Objective(x)
	if grad != nil {
		f.q.AddGradient(grad, x)
	}

	return v, nil
}

// Logistic builds the logistic regression loss on a design transform:
// LogitLink pre-composed with η = A·x. Weights and trials ride on
// observations; WithQuadratic lands in coefficient space.
func Logistic(a affine.Transform, successes []float64, opts ...Option) (Atom, error) {
	if a == nil {
		return nil, fmt.Errorf("smooth: Logistic: nil design: %w", ErrNilAtom)
	}
	out, _ := a.Dims()
	if len(successes) != out {
		return nil, fmt.Errorf("smooth: Logistic: successes length %d, design output %d: %w",
			len(successes), out, ErrDimensionMismatch)
	}
	cfg, err := parse(out, opts)
	if err != nil {
		return nil, err
	}
	base, err := LogitLink(successes, WithWeights(cfg.weights), WithTrials(cfg.trials))
	if err != nil {
		return nil, err
	}

	return newComposed(base, a, nil, cfg.quadratic)
}

// log1pExp computes log(1 + e^t) without overflow. Beyond ±35 the
// discarded term is below double precision.
func log1pExp(t float64) float64 {
	switch {
	case t > 35:
		return t
	case t < -35:
		return math.Exp(t)
	default:
		return math.Log1p(math.Exp(t))
	}
}

// sigmoid is the logistic function 1/(1 + e^{−t}), evaluated on the
// stable side.
func sigmoid(t float64) float64 {
	if t >= 0 {
		return 1 / (1 + math.Exp(-t))
	}
	e := math.Exp(t)

	return e / (1 + e)
}
