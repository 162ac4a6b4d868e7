// Package continuation solves composite problems with non-smoothable
// structure by sweeping a decreasing smoothing schedule (the NESTA
// scheme): each epsilon level replaces the rough penalties with their
// Moreau envelopes, solves the now-smooth composite, and warm-starts
// the next, tighter level from the result.
//
// The carried Lipschitz estimate is rescaled by ε_prev/ε_next between
// levels — envelope curvature grows as 1/ε, so the previous level's
// backtracked estimate times the ratio seeds the next level above its
// true constant and skips rediscovery. Prox-capable penalties can stay
// exact instead: list them in Exact and they bypass smoothing.
package continuation

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/proxreg/proxreg/composite"
	"github.com/proxreg/proxreg/seminorm"
	"github.com/proxreg/proxreg/smooth"
	"github.com/proxreg/proxreg/solver"
)

// Problem bundles the terms of one continuation sweep.
//
// Fields:
//   - Loss     — the smooth data-fit term (required).
//   - Smoothed — penalties replaced by their Moreau envelope at each
//     level's epsilon. This is where transforms without a closed-form
//     prox (and anything else worth smoothing) go.
//   - Exact    — prox-capable penalties applied exactly at every level.
type Problem struct {
	Loss     smooth.Atom
	Smoothed []seminorm.Atom
	Exact    []seminorm.Atom
}

// Options configures a sweep. The embedded solver options apply to
// every level; the Lipschitz field seeds only the first level, later
// levels are seeded from the carried, rescaled estimate. Timeout is a
// per-level budget, Ctx spans the whole sweep.
type Options struct {
	Solver solver.Options
}

// Level reports one smoothing stage.
type Level struct {
	// Epsilon is the level's smoothing strength.
	Epsilon float64

	// Coefficients is the level's terminal iterate (a fresh copy).
	Coefficients []float64

	// Status is the level's terminal solver state.
	Status solver.Status

	// Iterations is the level's accepted iteration count.
	Iterations int

	// Objective is the smoothed-composite value at Coefficients. Values
	// at different epsilons are not comparable across levels; evaluate
	// the exact composite on Coefficients for that.
	Objective float64

	// Lipschitz is the backtracked estimate after the level.
	Lipschitz float64
}

// Result is the outcome of a sweep: the final level's iterate and the
// per-level reports in schedule order.
type Result struct {
	Coefficients []float64
	Levels       []Level
}

// Geometric builds an n-level strictly decreasing schedule from start
// down to stop with a constant ratio. Endpoints are exact.
func Geometric(start, stop float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("continuation: need at least 2 levels, got %d: %w", n, ErrBadSchedule)
	}
	if !(start > stop && stop > 0) || math.IsInf(start, 0) || math.IsNaN(start) {
		return nil, fmt.Errorf("continuation: need start > stop > 0, got %g..%g: %w", start, stop, ErrBadSchedule)
	}

	eps := make([]float64, n)
	ratio := math.Pow(stop/start, 1/float64(n-1))
	eps[0] = start
	for i := 1; i < n-1; i++ {
		eps[i] = eps[i-1] * ratio
	}
	eps[n-1] = stop

	return eps, nil
}

// checkSchedule enforces a strictly decreasing positive sequence.
func checkSchedule(eps []float64) error {
	if len(eps) == 0 {
		return fmt.Errorf("continuation: empty schedule: %w", ErrBadSchedule)
	}
	prev := math.Inf(1)
	for i, e := range eps {
		if e <= 0 || math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("continuation: epsilon[%d]=%g must be positive and finite: %w", i, e, ErrBadSchedule)
		}
		if e >= prev {
			return fmt.Errorf("continuation: epsilon[%d]=%g does not decrease from %g: %w", i, e, prev, ErrBadSchedule)
		}
		prev = e
	}

	return nil
}

// Solve sweeps the schedule: per level it envelopes p.Smoothed at the
// level's epsilon, assembles the composite with the exact penalties,
// and runs the solver warm-started from the previous level. Levels that
// stop at their iteration budget still feed the next level; context
// cancellation aborts the whole sweep.
func Solve(p Problem, epsilons, x0 []float64, opts Options) (Result, error) {
	if err := checkSchedule(epsilons); err != nil {
		return Result{}, err
	}

	log := opts.Solver.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cur := append([]float64(nil), x0...)
	levels := make([]Level, 0, len(epsilons))

	seed := opts.Solver.Lipschitz
	if seed == 0 {
		seed = solver.DefaultLipschitz
	}

	for i, eps := range epsilons {
		parts := make([]smooth.Atom, 0, 1+len(p.Smoothed))
		parts = append(parts, p.Loss)
		for j, h := range p.Smoothed {
			sm, err := smooth.Smoothed(h, eps)
			if err != nil {
				return Result{}, fmt.Errorf("continuation: level %d: smoothing atom %d: %w", i, j, err)
			}
			parts = append(parts, sm)
		}
		loss, err := smooth.Sum(parts...)
		if err != nil {
			return Result{}, fmt.Errorf("continuation: level %d: %w", i, err)
		}
		comp, err := composite.New(loss, p.Exact...)
		if err != nil {
			return Result{}, fmt.Errorf("continuation: level %d: %w", i, err)
		}

		sopts := opts.Solver
		sopts.Lipschitz = seed
		s, err := solver.New(comp, sopts)
		if err != nil {
			return Result{}, fmt.Errorf("continuation: level %d: %w", i, err)
		}
		if err = s.Reset(cur); err != nil {
			return Result{}, fmt.Errorf("continuation: level %d: %w", i, err)
		}
		r, err := s.Run()
		if err != nil {
			return Result{}, fmt.Errorf("continuation: level %d (epsilon=%g): %w", i, eps, err)
		}

		log.Info("continuation level",
			zap.Int("level", i),
			zap.Float64("epsilon", eps),
			zap.Stringer("status", r.Status),
			zap.Int("iterations", r.Iterations),
			zap.Float64("objective", r.Objective),
			zap.Float64("lipschitz", r.Lipschitz))

		levels = append(levels, Level{
			Epsilon:      eps,
			Coefficients: r.Coefficients,
			Status:       r.Status,
			Iterations:   r.Iterations,
			Objective:    r.Objective,
			Lipschitz:    r.Lipschitz,
		})

		cur = r.Coefficients
		seed = r.Lipschitz
		if i+1 < len(epsilons) {
			seed *= eps / epsilons[i+1] // envelope curvature scales as 1/ε
		}
	}

	final := append([]float64(nil), cur...)

	return Result{Coefficients: final, Levels: levels}, nil
}
