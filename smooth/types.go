package smooth

import (
	"fmt"

	"github.com/proxreg/proxreg/quad"
)

// Atom is a differentiable objective term. Implementations may reuse
// internal scratch buffers across calls, so an Atom is single-
// goroutine: build one per worker when evaluating in parallel.
type Atom interface {
	// Dim is the length of the coefficient vectors the atom accepts.
	Dim() int

	// ValueGrad returns f(x) and, when grad is non-nil, overwrites grad
	// with ∇f(x). A nil grad skips gradient work entirely; backtracking
	// line searches call it that way. len(grad) must equal Dim() when
	// non-nil.
	ValueGrad(x, grad []float64) (float64, error)
}

// config collects the optional knobs shared by the loss constructors.
type config struct {
	weights   []float64
	trials    []float64
	quadratic *quad.Term
}

// Option customizes a loss at construction.
type Option func(*config)

// WithWeights attaches nonnegative per-observation case weights. A zero
// weight removes an observation from the fit; cross-validation folds
// are carved out exactly this way. The slice is copied.
func WithWeights(w []float64) Option {
	return func(c *config) { c.weights = w }
}

// WithTrials sets per-observation trial counts for the logistic loss
// (binomial likelihood). Without it every observation is a single
// Bernoulli trial. The slice is copied.
func WithTrials(n []float64) Option {
	return func(c *config) { c.trials = n }
}

// WithQuadratic attaches an identity-quadratic term in coefficient
// space; its value and gradient fold into the atom's.
func WithQuadratic(q *quad.Term) Option {
	return func(c *config) { c.quadratic = q }
}

// parse runs the options and validates the weight vector against the
// observation count.
func parse(n int, opts []Option) (config, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.weights != nil {
		if len(cfg.weights) != n {
			return cfg, fmt.Errorf("smooth: weights length %d, want %d: %w",
				len(cfg.weights), n, ErrDimensionMismatch)
		}
		for i, w := range cfg.weights {
			if w < 0 {
				return cfg, fmt.Errorf("smooth: weight %g at %d: %w", w, i, ErrBadData)
			}
		}
	}

	return cfg, nil
}

// checkOperands validates x and an optional gradient buffer against dim.
func checkOperands(x, grad []float64, dim int) error {
	if len(x) != dim {
		return fmt.Errorf("smooth: operand length %d, want %d: %w", len(x), dim, ErrDimensionMismatch)
	}
	if grad != nil && len(grad) != dim {
		return fmt.Errorf("smooth: gradient length %d, want %d: %w", len(grad), dim, ErrDimensionMismatch)
	}

	return nil
}
