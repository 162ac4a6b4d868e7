// Package path: lagrange sequencing, the warm-started path driver, and
// the KKT stationarity check.
package path

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/proxreg/proxreg/composite"
	"github.com/proxreg/proxreg/seminorm"
	"github.com/proxreg/proxreg/smooth"
	"github.com/proxreg/proxreg/solver"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultLagrangeProportion is the λ_min/λ_max ratio of the grid
	// DefaultLagrangeSequence builds.
	DefaultLagrangeProportion = 0.05

	// DefaultKKTTol is the relative tolerance CheckKKT falls back to
	// when the caller passes a non-positive one.
	DefaultKKTTol = 1e-2
)

// Penalty builds the path's non-smooth atom at one lagrange weight. Fit
// calls it once per λ; the usual template is an L1 family:
//
//	penalty := func(l float64) (seminorm.Atom, error) {
//		return seminorm.L1(dim, seminorm.Lagrange(l))
//	}
type Penalty func(lagrange float64) (seminorm.Atom, error)

// Options configures a path fit.
//
// Fields:
//   - Solver   — per-λ solver options. Lipschitz seeds only the first
//     λ, later solves reuse the carried estimate. Timeout budgets each
//     λ separately, Ctx spans the whole path.
//   - KKTTol   — relative tolerance of the per-point KKT report.
//     Non-positive selects DefaultKKTTol.
//   - Parallel — CrossValidate's concurrent-fold cap. Non-positive
//     selects GOMAXPROCS. Fit ignores it.
type Options struct {
	Solver   solver.Options
	KKTTol   float64
	Parallel int
}

// Point reports one λ of a fitted path.
type Point struct {
	// Lagrange is the point's penalty weight.
	Lagrange float64

	// Coefficients is the solution at this λ (a fresh copy).
	Coefficients []float64

	// Objective is the composite value at Coefficients.
	Objective float64

	// Status, Iterations and Restarts are the solver's terminal report
	// for this λ.
	Status     solver.Status
	Iterations int
	Restarts   int

	// Lipschitz is the backtracked estimate after this λ; it seeded the
	// next point's solve.
	Lipschitz float64

	// KKT lists the coordinates failing the stationarity check, in
	// index order. Empty means the point verifies at its λ. The check
	// assumes the plain λ·‖x‖₁ parametrization; ignore it for other
	// penalty templates.
	KKT []int
}

// Result is a fitted path in sequence order.
type Result struct {
	Points []Point
}

// DefaultLagrangeSequence builds the usual n-point geometric grid from
// λ_max = ‖∇f(0)‖∞ — the smallest weight whose lasso solution is
// identically zero — down to DefaultLagrangeProportion·λ_max. Endpoints
// are exact.
func DefaultLagrangeSequence(loss smooth.Atom, n int) ([]float64, error) {
	if loss == nil {
		return nil, fmt.Errorf("path: DefaultLagrangeSequence: nil loss: %w", ErrNilComponent)
	}
	if n < 2 {
		return nil, fmt.Errorf("path: need at least 2 points, got %d: %w", n, ErrBadSequence)
	}

	grad := make([]float64, loss.Dim())
	if _, err := loss.ValueGrad(make([]float64, loss.Dim()), grad); err != nil {
		return nil, fmt.Errorf("path: DefaultLagrangeSequence: %w", err)
	}
	lmax := floats.Norm(grad, math.Inf(1))
	if lmax == 0 || math.IsNaN(lmax) || math.IsInf(lmax, 0) {
		return nil, fmt.Errorf("path: gradient at the origin gives lambda_max=%g: %w", lmax, ErrBadSequence)
	}

	seq := make([]float64, n)
	ratio := math.Pow(DefaultLagrangeProportion, 1/float64(n-1))
	seq[0] = lmax
	for i := 1; i < n-1; i++ {
		seq[i] = seq[i-1] * ratio
	}
	seq[n-1] = lmax * DefaultLagrangeProportion

	return seq, nil
}

// checkSequence enforces a strictly decreasing positive lagrange grid.
func checkSequence(lambdas []float64) error {
	if len(lambdas) == 0 {
		return fmt.Errorf("path: empty sequence: %w", ErrBadSequence)
	}
	prev := math.Inf(1)
	for i, l := range lambdas {
		if l <= 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return fmt.Errorf("path: lagrange[%d]=%g must be positive and finite: %w", i, l, ErrBadSequence)
		}
		if l >= prev {
			return fmt.Errorf("path: lagrange[%d]=%g does not decrease from %g: %w", i, l, prev, ErrBadSequence)
		}
		prev = l
	}

	return nil
}

// Fit solves min f(x) + h_λ(x) for every λ in a strictly decreasing
// sequence, warm-starting each solve from the previous solution and
// carrying the backtracked Lipschitz estimate forward — the penalty
// weight changes between points, the loss curvature does not. A nil x0
// starts the path at the origin, where the first λ of
// DefaultLagrangeSequence is already optimal.
func Fit(loss smooth.Atom, penalty Penalty, lambdas, x0 []float64, opts Options) (Result, error) {
	if loss == nil {
		return Result{}, fmt.Errorf("path: Fit: nil loss: %w", ErrNilComponent)
	}
	if penalty == nil {
		return Result{}, fmt.Errorf("path: Fit: nil penalty: %w", ErrNilComponent)
	}
	if err := checkSequence(lambdas); err != nil {
		return Result{}, err
	}
	dim := loss.Dim()
	if x0 != nil && len(x0) != dim {
		return Result{}, fmt.Errorf("path: Fit: x0 length %d, want %d: %w", len(x0), dim, ErrDimensionMismatch)
	}

	log := opts.Solver.Logger
	if log == nil {
		log = zap.NewNop()
	}
	kktTol := opts.KKTTol
	if kktTol <= 0 {
		kktTol = DefaultKKTTol
	}

	cur := make([]float64, dim)
	copy(cur, x0)

	seed := opts.Solver.Lipschitz
	if seed == 0 {
		seed = solver.DefaultLipschitz
	}

	grad := make([]float64, dim)
	points := make([]Point, 0, len(lambdas))

	for i, l := range lambdas {
		atom, err := penalty(l)
		if err != nil {
			return Result{}, fmt.Errorf("path: point %d (lagrange=%g): %w", i, l, err)
		}
		prob, err := composite.New(loss, atom)
		if err != nil {
			return Result{}, fmt.Errorf("path: point %d: %w", i, err)
		}

		sopts := opts.Solver
		sopts.Lipschitz = seed
		s, err := solver.New(prob, sopts)
		if err != nil {
			return Result{}, fmt.Errorf("path: point %d: %w", i, err)
		}
		if err = s.Reset(cur); err != nil {
			return Result{}, fmt.Errorf("path: point %d: %w", i, err)
		}
		r, err := s.Run()
		if err != nil {
			return Result{}, fmt.Errorf("path: point %d (lagrange=%g): %w", i, l, err)
		}

		if _, err = loss.ValueGrad(r.Coefficients, grad); err != nil {
			return Result{}, fmt.Errorf("path: point %d: %w", i, err)
		}
		viol, err := CheckKKT(grad, r.Coefficients, l, kktTol)
		if err != nil {
			return Result{}, fmt.Errorf("path: point %d: %w", i, err)
		}

		log.Info("path point",
			zap.Int("point", i),
			zap.Float64("lagrange", l),
			zap.Stringer("status", r.Status),
			zap.Int("iterations", r.Iterations),
			zap.Float64("objective", r.Objective),
			zap.Int("kktViolations", len(viol)))

		points = append(points, Point{
			Lagrange:     l,
			Coefficients: r.Coefficients,
			Objective:    r.Objective,
			Status:       r.Status,
			Iterations:   r.Iterations,
			Restarts:     r.Restarts,
			Lipschitz:    r.Lipschitz,
			KKT:          viol,
		})

		cur = r.Coefficients
		seed = r.Lipschitz
	}

	return Result{Points: points}, nil
}

// CheckKKT verifies first-order optimality of x for the lasso-form
// objective f(x) + λ‖x‖₁, given grad = ∇f(x). Coordinates above the
// activity cutoff tol·max(1, ‖x‖₁) must balance the penalty
// subgradient, |grad_i + λ·sign(x_i)| ≤ tol·max(1, ‖x‖₂); the rest must
// keep the gradient inside the dual ball, |grad_i| ≤ λ·(1+tol).
// Returned are the violating coordinates in index order; empty means x
// verifies at this λ. A non-positive tol selects DefaultKKTTol.
func CheckKKT(grad, x []float64, lagrange, tol float64) ([]int, error) {
	if len(grad) != len(x) {
		return nil, fmt.Errorf("path: CheckKKT: grad length %d, x length %d: %w", len(grad), len(x), ErrDimensionMismatch)
	}
	if lagrange <= 0 || math.IsNaN(lagrange) || math.IsInf(lagrange, 0) {
		return nil, fmt.Errorf("path: CheckKKT: lagrange %g must be positive and finite: %w", lagrange, ErrBadSequence)
	}
	if tol <= 0 || math.IsNaN(tol) {
		tol = DefaultKKTTol
	}

	scale := tol * math.Max(1, floats.Norm(x, 2))
	cutoff := tol * math.Max(1, floats.Norm(x, 1))

	var bad []int
	for i, xi := range x {
		if math.Abs(xi) > cutoff {
			if math.Abs(grad[i]+lagrange*math.Copysign(1, xi)) > scale {
				bad = append(bad, i)
			}
		} else if math.Abs(grad[i]) > lagrange*(1+tol) {
			bad = append(bad, i)
		}
	}

	return bad, nil
}
