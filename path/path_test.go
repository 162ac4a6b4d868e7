package path_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proxreg/proxreg/path"
	"github.com/proxreg/proxreg/seminorm"
	"github.com/proxreg/proxreg/smooth"
	"github.com/proxreg/proxreg/solver"
)

// st is the scalar soft-threshold, the closed-form lasso solution per
// coordinate when the loss is the identity-design quadratic.
func st(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	default:
		return 0
	}
}

func l1Penalty(dim int) path.Penalty {
	return func(l float64) (seminorm.Atom, error) {
		return seminorm.L1(dim, seminorm.Lagrange(l))
	}
}

// TestDefaultLagrangeSequence_Grid pins the grid construction: exact
// endpoints at λ_max = ‖∇f(0)‖∞ and at the default proportion of it,
// strictly decreasing in between.
func TestDefaultLagrangeSequence_Grid(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{3, -2, 0.2})
	require.NoError(t, err)

	seq, err := path.DefaultLagrangeSequence(loss, 5)
	require.NoError(t, err)
	require.Len(t, seq, 5)

	// ∇f(0) = −target, so λ_max = 3.
	assert.Equal(t, 3.0, seq[0])
	assert.Equal(t, 3.0*path.DefaultLagrangeProportion, seq[4])
	for i := 1; i < len(seq); i++ {
		assert.Less(t, seq[i], seq[i-1], "grid must decrease at %d", i)
	}
}

// TestDefaultLagrangeSequence_Rejects covers the construction errors:
// nil loss, too few points, and a flat gradient at the origin (no
// usable λ_max).
func TestDefaultLagrangeSequence_Rejects(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{1, 2})
	require.NoError(t, err)

	_, err = path.DefaultLagrangeSequence(nil, 5)
	assert.ErrorIs(t, err, path.ErrNilComponent)

	_, err = path.DefaultLagrangeSequence(loss, 1)
	assert.ErrorIs(t, err, path.ErrBadSequence)

	flat, err := smooth.Quadratic([]float64{0, 0})
	require.NoError(t, err)
	_, err = path.DefaultLagrangeSequence(flat, 5)
	assert.ErrorIs(t, err, path.ErrBadSequence)
}

// TestFit_LassoPathMatchesSoftThreshold drives a three-point path on
// the identity-design quadratic, where every point has the closed-form
// soft-threshold solution. Each point must converge, verify its KKT
// certificate, and hand its Lipschitz estimate to the next.
func TestFit_LassoPathMatchesSoftThreshold(t *testing.T) {
	target := []float64{3, -2, 0.2}
	loss, err := smooth.Quadratic(target)
	require.NoError(t, err)

	opts := path.Options{Solver: solver.DefaultOptions()}
	opts.Solver.Tol = 1e-12

	lambdas := []float64{2.5, 1, 0.5}
	res, err := path.Fit(loss, l1Penalty(3), lambdas, nil, opts)
	require.NoError(t, err)
	require.Len(t, res.Points, 3)

	prevObj := math.Inf(1)
	for i, pt := range res.Points {
		l := lambdas[i]
		require.Equal(t, l, pt.Lagrange)
		require.Equal(t, solver.Converged, pt.Status, "point %d", i)

		want := []float64{st(3, l), st(-2, l), st(0.2, l)}
		assert.InDeltaSlice(t, want, pt.Coefficients, 1e-8, "point %d", i)

		assert.Empty(t, pt.KKT, "point %d must verify", i)
		assert.Greater(t, pt.Lipschitz, 0.0)

		// The minimum of f + λ·h shrinks with λ.
		assert.Less(t, pt.Objective, prevObj, "objective rose at point %d", i)
		prevObj = pt.Objective
	}
}

// TestFit_WarmStartFromGivenPoint passes an explicit x0 and checks it
// is only a starting point: the terminal solutions are unchanged.
func TestFit_WarmStartFromGivenPoint(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{5, -5})
	require.NoError(t, err)

	opts := path.Options{Solver: solver.DefaultOptions()}
	opts.Solver.Tol = 1e-12

	res, err := path.Fit(loss, l1Penalty(2), []float64{1}, []float64{100, -100}, opts)
	require.NoError(t, err)
	require.Len(t, res.Points, 1)
	assert.InDeltaSlice(t, []float64{4, -4}, res.Points[0].Coefficients, 1e-8)
}

// TestFit_Rejects covers the construction errors: nil components, a
// non-decreasing or non-positive grid, and a misshapen x0.
func TestFit_Rejects(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{1, 2})
	require.NoError(t, err)
	pen := l1Penalty(2)
	opts := path.Options{Solver: solver.DefaultOptions()}

	_, err = path.Fit(nil, pen, []float64{1}, nil, opts)
	assert.ErrorIs(t, err, path.ErrNilComponent)

	_, err = path.Fit(loss, nil, []float64{1}, nil, opts)
	assert.ErrorIs(t, err, path.ErrNilComponent)

	_, err = path.Fit(loss, pen, nil, nil, opts)
	assert.ErrorIs(t, err, path.ErrBadSequence)

	_, err = path.Fit(loss, pen, []float64{1, 2}, nil, opts)
	assert.ErrorIs(t, err, path.ErrBadSequence)

	_, err = path.Fit(loss, pen, []float64{1, -0.5}, nil, opts)
	assert.ErrorIs(t, err, path.ErrBadSequence)

	_, err = path.Fit(loss, pen, []float64{1}, []float64{1, 2, 3}, opts)
	assert.ErrorIs(t, err, path.ErrDimensionMismatch)
}

// TestCheckKKT_Certificate verifies both branches of the stationarity
// check on the hand-solved lasso at λ=1: the true solution passes, a
// perturbed active coordinate fails.
func TestCheckKKT_Certificate(t *testing.T) {
	// target [3,-2,0.2], λ=1 → x* = [2,-1,0], grad = x*−target.
	x := []float64{2, -1, 0}
	grad := []float64{-1, 1, -0.2}

	viol, err := path.CheckKKT(grad, x, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, viol)

	// Move the first coordinate off the optimum.
	xBad := []float64{2.5, -1, 0}
	gradBad := []float64{-0.5, 1, -0.2}
	viol, err = path.CheckKKT(gradBad, xBad, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, viol)

	// An inactive coordinate whose gradient leaves the dual ball.
	viol, err = path.CheckKKT([]float64{-1, 1, 1.5}, x, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, viol)
}

// TestCheckKKT_Rejects covers the argument errors.
func TestCheckKKT_Rejects(t *testing.T) {
	_, err := path.CheckKKT([]float64{1}, []float64{1, 2}, 1, 0)
	assert.ErrorIs(t, err, path.ErrDimensionMismatch)

	_, err = path.CheckKKT([]float64{1}, []float64{1}, 0, 0)
	assert.ErrorIs(t, err, path.ErrBadSequence)

	_, err = path.CheckKKT([]float64{1}, []float64{1}, math.Inf(1), 0)
	assert.ErrorIs(t, err, path.ErrBadSequence)
}
