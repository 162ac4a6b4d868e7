package quad_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proxreg/proxreg/quad"
)

// TestObjectiveAndGradient_HandComputed checks value and gradient of a
// fully populated term against hand-worked numbers.
func TestObjectiveAndGradient_HandComputed(t *testing.T) {
	q, err := quad.New(0.5, []float64{1, 1}, []float64{2, -1}, 3)
	require.NoError(t, err)

	x := []float64{3, 1}
	// (0.25)·(4+0) + (6−1) + 3 = 9
	assert.InDelta(t, 9.0, q.Objective(x), 1e-12, "objective")

	grad := make([]float64, 2)
	q.AddGradient(grad, x)
	// 0.5·(x−c) + linear = [1,0] + [2,−1]
	assert.InDeltaSlice(t, []float64{3, -1}, grad, 1e-12, "gradient")
}

// TestNilTerm_IsZeroFunction verifies the nil receiver contract: zero
// value, zero gradient, prox passthrough.
func TestNilTerm_IsZeroFunction(t *testing.T) {
	var q *quad.Term

	assert.True(t, q.IsZero())
	assert.NoError(t, q.Check(7))
	assert.Zero(t, q.Objective([]float64{1, 2, 3}), "nil term evaluates to 0")

	grad := []float64{5, 5}
	q.AddGradient(grad, []float64{1, 2})
	assert.Equal(t, []float64{5, 5}, grad, "nil term adds nothing")

	step, w, err := q.ProxShift(nil, 0.25, []float64{1, -2})
	require.NoError(t, err)
	assert.Equal(t, 0.25, step, "step unchanged")
	assert.Equal(t, []float64{1, -2}, w, "point unchanged")
}

// TestCollapsed_SameFunction confirms folding the center into the
// linear part leaves the function unchanged pointwise.
func TestCollapsed_SameFunction(t *testing.T) {
	q, err := quad.New(0.5, []float64{1, 1}, []float64{2, -1}, 3)
	require.NoError(t, err)
	c := q.Collapsed()

	assert.Nil(t, c.Center, "collapsed form has no center")
	for _, x := range [][]float64{{3, 1}, {0, 0}, {-2, 5}} {
		assert.InDelta(t, q.Objective(x), c.Objective(x), 1e-12, "same values everywhere")
	}
}

// TestAdd_SumsPointwise checks Add against evaluating both operands.
func TestAdd_SumsPointwise(t *testing.T) {
	a, err := quad.New(1, []float64{2, 0}, nil, 0)
	require.NoError(t, err)
	b, err := quad.New(0.5, nil, []float64{1, 1}, 2)
	require.NoError(t, err)

	sum, err := quad.Add(a, b)
	require.NoError(t, err)

	for _, x := range [][]float64{{0, 0}, {1, -1}, {3, 2}} {
		assert.InDelta(t, a.Objective(x)+b.Objective(x), sum.Objective(x), 1e-12)
	}

	// nil operands pass the other side through.
	same, err := quad.Add(nil, b)
	require.NoError(t, err)
	assert.InDelta(t, b.Objective([]float64{1, 2}), same.Objective([]float64{1, 2}), 1e-12)
}

// TestProxShift_CenterOnly matches the closed-form minimizer of
// (1/2)‖z−x‖² + (1/2)‖z−μ‖², which is the midpoint (x+μ)/2.
func TestProxShift_CenterOnly(t *testing.T) {
	q, err := quad.New(1, []float64{2, 2}, nil, 0)
	require.NoError(t, err)

	step, w, err := q.ProxShift(nil, 1, []float64{0, 4})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, step, 1e-12, "step shrinks to s/(1+s·coef)")
	assert.InDeltaSlice(t, []float64{1, 3}, w, 1e-12, "midpoint of x and center")
}

// TestProxShift_WithLinear matches the stationarity condition of
// (1/(2s))‖z−x‖² + (c/2)‖z‖² + ⟨β,z⟩ solved by hand.
func TestProxShift_WithLinear(t *testing.T) {
	q, err := quad.New(1, nil, []float64{1, 0}, 0)
	require.NoError(t, err)

	step, w, err := q.ProxShift(nil, 2, []float64{4, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, step, 1e-12)
	assert.InDeltaSlice(t, []float64{2.0 / 3.0, 4.0 / 3.0}, w, 1e-12)
}

// TestGuards covers constructor and method validation.
func TestGuards(t *testing.T) {
	_, err := quad.New(-1, nil, nil, 0)
	assert.ErrorIs(t, err, quad.ErrBadCoef, "negative coef")

	_, err = quad.New(1, []float64{1, 2}, []float64{1}, 0)
	assert.ErrorIs(t, err, quad.ErrDimensionMismatch, "center/linear disagree")

	q, err := quad.New(1, []float64{1, 2}, nil, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, q.Check(3), quad.ErrDimensionMismatch, "ambient dim disagrees")
	assert.NoError(t, q.Check(2))

	_, _, err = q.ProxShift(nil, 0, []float64{1, 2})
	assert.ErrorIs(t, err, quad.ErrBadStep, "step must be positive")

	_, err = quad.Add(q, &quad.Term{Linear: []float64{1, 2, 3}})
	assert.ErrorIs(t, err, quad.ErrDimensionMismatch, "mismatched linear parts")
}
