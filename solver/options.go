package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxIts caps the number of accepted iterations per Run.
	DefaultMaxIts = 1000

	// DefaultMinIts is the number of consecutive below-Tol iterations
	// required before declaring convergence. Guards against stopping on
	// a single flat step while momentum is still winding up.
	DefaultMinIts = 5

	// DefaultTol is the relative-change convergence threshold.
	DefaultTol = 1e-6

	// DefaultLipschitz seeds the step-size estimate when the caller has
	// none. Backtracking grows it to a valid majorizer within the first
	// few trials, so a generic 1.0 is safe for any problem scale.
	DefaultLipschitz = 1.0

	// DefaultBacktrack is the Lipschitz growth factor applied on each
	// rejected backtracking trial. Must stay above 1.
	DefaultBacktrack = 2.0

	// DefaultMaxRestarts bounds consecutive momentum restarts without
	// objective progress before the run stops as Stagnated.
	DefaultMaxRestarts = 50
)

// Options configures a Run. The zero value of every field means "use
// the documented default"; pass the struct by value, it is copied at
// construction and never mutated afterwards.
//
// Fields:
//   - MaxIts      — iteration budget (accepted iterations). Default 1000.
//   - MinIts      — consecutive below-Tol iterations required for
//     Converged. Must not exceed MaxIts. Zero means the default; a
//     negative value requests the floor, a single below-Tol iteration.
//     Default 5.
//   - Tol         — relative-change threshold. Default 1e-6.
//   - Lipschitz   — initial Lipschitz estimate L; the step is 1/L.
//     Warm-started callers pass the previous Result.Lipschitz. Default 1.0.
//   - Backtrack   — multiplicative L growth on each rejected trial step.
//     Must exceed 1. Default 2.0.
//   - MaxRestarts — consecutive no-progress restart ceiling before
//     Stagnated. Default 50.
//   - Criterion   — CriterionObjective (default) or CriterionIterate.
//   - Timeout     — optional wall-clock budget, checked at iteration
//     boundaries; exhaustion is the MaxIterations terminal state.
//     Zero means no limit.
//   - Ctx         — optional cancellation context, checked at iteration
//     boundaries; cancellation aborts Run with ctx.Err(). Nil means
//     context.Background().
//   - Logger      — optional structured tracer; nil means no logging.
//
// Example:
//
//	opts := solver.DefaultOptions()
//	opts.Tol = 1e-10
//	opts.MaxIts = 200
//
//	res, err := solver.Solve(problem, x0, opts)
//	if err != nil {
//	  // construction/arming problem: bad options, wrong x0 length,
//	  // or a canceled context
//	}
//	fmt.Println(res.Status, res.Objective)
type Options struct {
	MaxIts      int
	MinIts      int
	Tol         float64
	Lipschitz   float64
	Backtrack   float64
	MaxRestarts int
	Criterion   Criterion
	Timeout     time.Duration
	Ctx         context.Context
	Logger      *zap.Logger
}

// DefaultOptions returns an Options struct initialized with the
// documented defaults. Use it as a starting point and override fields.
//
// Defaults:
//   - MaxIts:      1000
//   - MinIts:      5
//   - Tol:         1e-6
//   - Lipschitz:   1.0
//   - Backtrack:   2.0
//   - MaxRestarts: 50
//   - Criterion:   CriterionObjective
//   - Timeout:     0 (no wall-clock limit)
//   - Ctx:         nil (context.Background)
//   - Logger:      nil (no logging)
func DefaultOptions() Options {
	return Options{
		MaxIts:      DefaultMaxIts,
		MinIts:      DefaultMinIts,
		Tol:         DefaultTol,
		Lipschitz:   DefaultLipschitz,
		Backtrack:   DefaultBacktrack,
		MaxRestarts: DefaultMaxRestarts,
		Criterion:   CriterionObjective,
	}
}

// normalize fills zero-valued fields with the documented defaults in
// exactly one place. Called once at construction, before validate.
func (o *Options) normalize() {
	if o.MaxIts == 0 {
		o.MaxIts = DefaultMaxIts
	}
	switch {
	case o.MinIts == 0:
		o.MinIts = DefaultMinIts
	case o.MinIts < 0:
		// Convergence always needs one below-Tol iteration, so the floor
		// folds every negative request to 1.
		o.MinIts = 1
	}
	if o.Tol == 0 {
		o.Tol = DefaultTol
	}
	if o.Lipschitz == 0 {
		o.Lipschitz = DefaultLipschitz
	}
	if o.Backtrack == 0 {
		o.Backtrack = DefaultBacktrack
	}
	if o.MaxRestarts == 0 {
		o.MaxRestarts = DefaultMaxRestarts
	}
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// validate rejects settings the iteration cannot honor. Runs after
// normalize, so zero values have already become defaults.
func (o *Options) validate() error {
	if o.MaxIts < 0 {
		return fmt.Errorf("solver: MaxIts %d must be positive: %w", o.MaxIts, ErrBadOptions)
	}
	if o.MinIts < 0 || o.MinIts > o.MaxIts {
		return fmt.Errorf("solver: MinIts %d outside [0, MaxIts=%d]: %w", o.MinIts, o.MaxIts, ErrBadOptions)
	}
	if o.Tol < 0 || math.IsNaN(o.Tol) || math.IsInf(o.Tol, 0) {
		return fmt.Errorf("solver: Tol %g must be positive and finite: %w", o.Tol, ErrBadOptions)
	}
	if o.Lipschitz < 0 || math.IsNaN(o.Lipschitz) || math.IsInf(o.Lipschitz, 0) {
		return fmt.Errorf("solver: Lipschitz %g must be positive and finite: %w", o.Lipschitz, ErrBadOptions)
	}
	if o.Backtrack <= 1 || math.IsNaN(o.Backtrack) || math.IsInf(o.Backtrack, 0) {
		return fmt.Errorf("solver: Backtrack %g must exceed 1: %w", o.Backtrack, ErrBadOptions)
	}
	if o.MaxRestarts < 0 {
		return fmt.Errorf("solver: MaxRestarts %d must be positive: %w", o.MaxRestarts, ErrBadOptions)
	}
	if o.Criterion != CriterionObjective && o.Criterion != CriterionIterate {
		return fmt.Errorf("solver: unknown criterion %d: %w", int(o.Criterion), ErrBadOptions)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("solver: Timeout %v must be nonnegative: %w", o.Timeout, ErrBadOptions)
	}

	return nil
}
