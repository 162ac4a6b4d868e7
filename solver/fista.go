package solver

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/proxreg/proxreg/composite"
)

// maxLipschitz caps backtracking growth. Past this the quadratic model
// can no longer be distinguished from the function in float64, so the
// trial is handed to the restart/stagnation machinery instead of
// looping on ever-smaller steps.
const maxLipschitz = 1e30

// restartSlack keeps evaluation rounding out of the overshoot test: at
// the convergence plateau two objective evaluations differ by a few
// ulps either way, and treating that as an increase would burn the
// restart budget on noise. True momentum overshoots sit far above this
// scale.
const restartSlack = 8 * 0x1p-52

// Solver drives the accelerated proximal-gradient iteration over one
// composite problem. A Solver is single-goroutine: it reuses internal
// buffers across iterations. Construct with New, arm a starting point
// with Reset, then Run; each Reset arms exactly one Run.
//
// The Lipschitz estimate persists across Reset/Run cycles on the same
// Solver, so warm-started sweeps (continuation schedules, lagrange
// paths) skip rediscovering the step size.
type Solver struct {
	p    *composite.Problem
	opts Options

	x    []float64 // accepted iterate
	y    []float64 // extrapolated point
	grad []float64 // ∇f(y)
	cand []float64 // trial iterate

	t   float64 // momentum coefficient t_k
	lip float64 // current Lipschitz estimate
	fx  float64 // total objective at x

	iters    int
	restarts int
	status   Status
	armed    bool
}

// New builds a Solver for p. Zero-valued option fields take the
// documented defaults; invalid settings return ErrBadOptions.
func New(p *composite.Problem, opts Options) (*Solver, error) {
	if p == nil {
		return nil, fmt.Errorf("solver: nil problem: %w", ErrNotInitialized)
	}
	opts.normalize()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := p.Dim()

	return &Solver{
		p:    p,
		opts: opts,
		x:    make([]float64, n),
		y:    make([]float64, n),
		grad: make([]float64, n),
		cand: make([]float64, n),
		t:    1,
		lip:  opts.Lipschitz,
	}, nil
}

// Reset arms the solver with a starting point and cleared momentum.
// The Lipschitz estimate is kept from the previous run; the iteration
// and restart counters start over.
func (s *Solver) Reset(x0 []float64) error {
	if len(x0) != s.p.Dim() {
		return fmt.Errorf("solver: x0 has %d coefficients, problem has %d: %w",
			len(x0), s.p.Dim(), ErrDimensionMismatch)
	}
	copy(s.x, x0)
	copy(s.y, x0)
	s.t = 1
	s.iters = 0
	s.restarts = 0
	s.status = Initialized
	s.armed = true

	return nil
}

// Status reports the solver's current life-cycle state.
func (s *Solver) Status() Status { return s.status }

// Run iterates from the armed starting point until convergence, budget
// exhaustion or stagnation, and returns the terminal Result. Budget
// exhaustion (MaxIts or Timeout) and stagnation are normal terminal
// states carried on the Result, not errors. Context cancellation aborts
// the run and returns the context's error; re-arm with Reset to retry.
func (s *Solver) Run() (Result, error) {
	if !s.armed {
		return Result{}, ErrNotInitialized
	}
	s.armed = false
	s.status = Running

	ctx := s.opts.Ctx
	log := s.opts.Logger

	var deadline time.Time
	if s.opts.Timeout > 0 {
		deadline = time.Now().Add(s.opts.Timeout)
	}

	fx, err := s.p.Objective(s.x)
	if err != nil {
		s.status = Initialized

		return Result{}, err
	}
	s.fx = fx

	log.Info("solve start",
		zap.Int("dim", s.p.Dim()),
		zap.Float64("objective", s.fx),
		zap.Float64("lipschitz", s.lip),
		zap.Int("maxIts", s.opts.MaxIts))

	tolStreak := 0  // consecutive below-Tol iterations
	noProgress := 0 // consecutive restarts without objective decrease

	for s.iters < s.opts.MaxIts {
		// Budget checks sit on the iteration boundary: cancellation is
		// cooperative, never preemptive.
		if err = ctx.Err(); err != nil {
			s.status = Initialized

			return Result{}, err
		}
		if s.opts.Timeout > 0 && time.Now().After(deadline) {
			s.status = MaxIterations

			break
		}
		s.iters++

		// Gradient of the smooth part at the extrapolated point.
		fy, err := s.p.Smooth(s.y, s.grad)
		if err != nil {
			s.status = Initialized

			return Result{}, err
		}

		// Backtracking: grow L until the quadratic model at y majorizes
		// the smooth part at the trial point. Retrials do not advance
		// the iteration counter.
		var fcand float64
		for {
			step := 1 / s.lip
			floats.AddScaledTo(s.cand, s.y, -step, s.grad)
			if _, err = s.p.Prox(s.cand, s.cand, step); err != nil {
				s.status = Initialized

				return Result{}, err
			}
			if fcand, err = s.p.Smooth(s.cand, nil); err != nil {
				s.status = Initialized

				return Result{}, err
			}

			var inner, dist2 float64
			for i, c := range s.cand {
				d := c - s.y[i]
				inner += s.grad[i] * d
				dist2 += d * d
			}
			if fcand <= fy+inner+0.5*s.lip*dist2 || s.lip >= maxLipschitz {
				break
			}
			s.lip *= s.opts.Backtrack
		}

		hcand, err := s.p.Nonsmooth(s.cand)
		if err != nil {
			s.status = Initialized

			return Result{}, err
		}
		total := fcand + hcand

		// Adaptive restart: the momentum overshot when the accepted
		// candidate would raise the objective beyond rounding noise.
		// Discard it, reset the momentum state, and retake the step
		// from the current iterate.
		if total > s.fx+restartSlack*math.Max(1, math.Abs(s.fx)) {
			s.t = 1
			copy(s.y, s.x)
			s.restarts++
			noProgress++
			tolStreak = 0

			log.Debug("restart",
				zap.Int("iter", s.iters),
				zap.Float64("objective", s.fx),
				zap.Float64("rejected", total),
				zap.Int("noProgress", noProgress))

			if noProgress >= s.opts.MaxRestarts {
				s.status = Stagnated
				log.Warn("stagnated",
					zap.Int("iter", s.iters),
					zap.Int("restarts", s.restarts),
					zap.Float64("objective", s.fx))

				break
			}

			continue
		}

		// Accepted. Measure relative change against the outgoing state
		// before mutating it.
		var rel float64
		switch s.opts.Criterion {
		case CriterionIterate:
			var num, den float64
			for i, c := range s.cand {
				d := c - s.x[i]
				num += d * d
				den += s.x[i] * s.x[i]
			}
			rel = math.Sqrt(num) / math.Max(1, math.Sqrt(den))
		default:
			rel = math.Abs(s.fx-total) / math.Max(1, math.Abs(s.fx))
		}
		if total < s.fx {
			noProgress = 0
		}

		// FISTA momentum recursion and extrapolation for the next
		// iteration, then shift the iterate window.
		tn := 0.5 * (1 + math.Sqrt(1+4*s.t*s.t))
		beta := (s.t - 1) / tn
		for i, c := range s.cand {
			s.y[i] = c + beta*(c-s.x[i])
		}
		s.t = tn
		s.x, s.cand = s.cand, s.x
		s.fx = total

		log.Debug("iteration",
			zap.Int("iter", s.iters),
			zap.Float64("objective", s.fx),
			zap.Float64("lipschitz", s.lip),
			zap.Float64("rel", rel))

		if rel < s.opts.Tol {
			tolStreak++
			if tolStreak >= s.opts.MinIts {
				s.status = Converged

				break
			}
		} else {
			tolStreak = 0
		}
	}

	if s.status == Running {
		s.status = MaxIterations
	}

	log.Info("solve done",
		zap.Stringer("status", s.status),
		zap.Int("iterations", s.iters),
		zap.Int("restarts", s.restarts),
		zap.Float64("objective", s.fx),
		zap.Float64("lipschitz", s.lip))

	return s.result(), nil
}

// result snapshots the terminal state. Accepted objectives are
// monotone non-increasing (overshoots are discarded by the restart
// policy), so the current iterate is also the best seen.
func (s *Solver) result() Result {
	coef := make([]float64, len(s.x))
	copy(coef, s.x)

	return Result{
		Coefficients: coef,
		Objective:    s.fx,
		Iterations:   s.iters,
		Restarts:     s.restarts,
		Lipschitz:    s.lip,
		Status:       s.status,
	}
}

// Lipschitz reports the current step-size estimate. After a Run this is
// the final backtracked value; pass it as Options.Lipschitz when
// constructing a solver for a nearby problem.
func (s *Solver) Lipschitz() float64 { return s.lip }

// Solve is the one-shot form: build a Solver for p with opts, arm it at
// x0 and run it to a terminal state.
func Solve(p *composite.Problem, x0 []float64, opts Options) (Result, error) {
	s, err := New(p, opts)
	if err != nil {
		return Result{}, err
	}
	if err = s.Reset(x0); err != nil {
		return Result{}, err
	}

	return s.Run()
}
