package continuation_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proxreg/proxreg/composite"
	"github.com/proxreg/proxreg/continuation"
	"github.com/proxreg/proxreg/seminorm"
	"github.com/proxreg/proxreg/smooth"
	"github.com/proxreg/proxreg/solver"
)

// TestSolve_SweepTightensToExactSolution smooths an L1 penalty through
// a four-level schedule. The envelope matches the exact penalty wherever
// coefficients clear the λε zone, so the sweep lands on the lasso
// solution, and the exact objective must not rise between levels.
func TestSolve_SweepTightensToExactSolution(t *testing.T) {
	target := []float64{3, -2, 0.2, 0}
	loss, err := smooth.Quadratic(target)
	require.NoError(t, err)
	pen, err := seminorm.L1(4, seminorm.Lagrange(1))
	require.NoError(t, err)

	opts := continuation.Options{Solver: solver.DefaultOptions()}
	opts.Solver.Tol = 1e-10
	opts.Solver.MaxIts = 3000

	eps := []float64{1, 0.1, 0.01, 0.001}
	res, err := continuation.Solve(continuation.Problem{
		Loss:     loss,
		Smoothed: []seminorm.Atom{pen},
	}, eps, make([]float64, 4), opts)
	require.NoError(t, err)

	require.InDeltaSlice(t, []float64{2, -1, 0, 0}, res.Coefficients, 5e-4)
	require.Len(t, res.Levels, 4)

	// True (unsmoothed) objective, for the cross-level comparison.
	exact, err := composite.New(loss, pen)
	require.NoError(t, err)

	prevObj := math.Inf(1)
	prevLip := 0.0
	for i, lv := range res.Levels {
		require.Equal(t, eps[i], lv.Epsilon)
		require.Equal(t, solver.Converged, lv.Status, "level %d", i)
		require.Len(t, lv.Coefficients, 4)

		obj, err := exact.Objective(lv.Coefficients)
		require.NoError(t, err)
		require.LessOrEqual(t, obj, prevObj+1e-6, "exact objective rose at level %d", i)
		prevObj = obj

		require.GreaterOrEqual(t, lv.Lipschitz, prevLip, "carried estimate shrank at level %d", i)
		prevLip = lv.Lipschitz
	}

	// The final level's iterate is the sweep's answer.
	require.Equal(t, res.Levels[3].Coefficients, res.Coefficients)
}

// TestSolve_FusedSmoothedWithExactL1 runs the mixed route: the fused
// penalty goes through its envelope while the L1 term keeps its exact
// prox. The sweep must approach the joint fused-lasso prox solution.
func TestSolve_FusedSmoothedWithExactL1(t *testing.T) {
	y := []float64{0, 0, 10, 10}
	loss, err := smooth.Quadratic(y)
	require.NoError(t, err)
	fused, err := seminorm.Fused(4, seminorm.Lagrange(1))
	require.NoError(t, err)
	shrink, err := seminorm.L1(4, seminorm.Lagrange(0.25))
	require.NoError(t, err)

	// Reference: argmin ½‖x−y‖² + TV(x) + 0.25‖x‖₁ in closed form.
	want, err := seminorm.FusedLassoProx(nil, y, 1, 0.25, nil)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.25, 0.25, 9.25, 9.25}, want, 1e-12)

	opts := continuation.Options{Solver: solver.DefaultOptions()}
	opts.Solver.Tol = 1e-9
	opts.Solver.MaxIts = 5000

	res, err := continuation.Solve(continuation.Problem{
		Loss:     loss,
		Smoothed: []seminorm.Atom{fused},
		Exact:    []seminorm.Atom{shrink},
	}, []float64{1, 0.1, 0.01, 0.001}, make([]float64, 4), opts)
	require.NoError(t, err)

	require.InDeltaSlice(t, want, res.Coefficients, 0.02)
	require.Equal(t, solver.Converged, res.Levels[len(res.Levels)-1].Status)
}

// TestGeometric_Schedule pins the builder: exact endpoints, constant
// ratio, strict decrease, and rejection of degenerate ranges.
func TestGeometric_Schedule(t *testing.T) {
	eps, err := continuation.Geometric(1, 1e-3, 4)
	require.NoError(t, err)
	require.Len(t, eps, 4)
	require.Equal(t, 1.0, eps[0])
	require.Equal(t, 1e-3, eps[3])
	require.InDelta(t, 0.1, eps[1], 1e-12)
	require.InDelta(t, 0.01, eps[2], 1e-12)
	for i := 1; i < len(eps); i++ {
		require.Less(t, eps[i], eps[i-1])
	}

	bad := []struct {
		name        string
		start, stop float64
		n           int
	}{
		{"too few levels", 1, 0.1, 1},
		{"start not above stop", 0.1, 0.1, 3},
		{"stop not positive", 1, 0, 3},
		{"NaN start", math.NaN(), 0.1, 3},
	}
	for _, tc := range bad {
		_, err := continuation.Geometric(tc.start, tc.stop, tc.n)
		require.ErrorIs(t, err, continuation.ErrBadSchedule, tc.name)
	}
}

// TestSolve_ScheduleValidation rejects malformed epsilon sequences and
// a missing loss before any level runs.
func TestSolve_ScheduleValidation(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{1, -1})
	require.NoError(t, err)
	p := continuation.Problem{Loss: loss}
	opts := continuation.Options{Solver: solver.DefaultOptions()}

	bad := []struct {
		name string
		eps  []float64
	}{
		{"empty", nil},
		{"flat", []float64{0.5, 0.5}},
		{"increasing", []float64{0.1, 0.5}},
		{"negative entry", []float64{1, -0.1}},
		{"NaN entry", []float64{1, math.NaN()}},
		{"zero entry", []float64{1, 0}},
	}
	for _, tc := range bad {
		_, err := continuation.Solve(p, tc.eps, make([]float64, 2), opts)
		require.ErrorIs(t, err, continuation.ErrBadSchedule, tc.name)
	}

	_, err = continuation.Solve(continuation.Problem{}, []float64{1, 0.1}, make([]float64, 2), opts)
	require.ErrorIs(t, err, smooth.ErrNilAtom)
}

// TestSolve_ContextCancellationAborts stops the sweep through the
// options-carried context.
func TestSolve_ContextCancellationAborts(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{3, -2})
	require.NoError(t, err)
	pen, err := seminorm.L1(2, seminorm.Lagrange(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := continuation.Options{Solver: solver.DefaultOptions()}
	opts.Solver.Ctx = ctx

	_, err = continuation.Solve(continuation.Problem{
		Loss:     loss,
		Smoothed: []seminorm.Atom{pen},
	}, []float64{1, 0.1}, make([]float64, 2), opts)
	require.ErrorIs(t, err, context.Canceled)
}
