package composite_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/composite"
	"github.com/proxreg/proxreg/seminorm"
	"github.com/proxreg/proxreg/smooth"
)

// TestNew_Guards covers construction validation.
func TestNew_Guards(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{1, 2, 3})
	require.NoError(t, err)
	l1, err := seminorm.L1(3, seminorm.Lagrange(1))
	require.NoError(t, err)

	_, err = composite.New(nil, l1)
	assert.ErrorIs(t, err, composite.ErrNilAtom)

	_, err = composite.New(loss, nil)
	assert.ErrorIs(t, err, composite.ErrNilAtom)

	short, err := seminorm.L1(2, seminorm.Lagrange(1))
	require.NoError(t, err)
	_, err = composite.New(loss, short)
	assert.ErrorIs(t, err, composite.ErrDimensionMismatch)

	p, err := composite.New(loss, l1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Dim())
	_, err = p.Prox(nil, []float64{1, 2}, 1)
	assert.ErrorIs(t, err, composite.ErrDimensionMismatch)
}

// TestObjective_SumsTerms pins the composite value on a hand-computed
// lasso objective.
func TestObjective_SumsTerms(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{1, 2, 3})
	require.NoError(t, err)
	l1, err := seminorm.L1(3, seminorm.Lagrange(0.5))
	require.NoError(t, err)
	p, err := composite.New(loss, l1)
	require.NoError(t, err)

	x := []float64{0, 2, 4}
	// (1/2)(1 + 0 + 1) + 0.5·6
	v, err := p.Objective(x)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	sv, err := p.Smooth(x, nil)
	require.NoError(t, err)
	nv, err := p.Nonsmooth(x)
	require.NoError(t, err)
	assert.InDelta(t, v, sv+nv, 1e-12)

	grad := make([]float64, 3)
	_, err = p.Smooth(x, grad)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, grad, 1e-12)
}

// TestObjective_InfeasibleBound propagates +Inf from a violated
// constraint atom.
func TestObjective_InfeasibleBound(t *testing.T) {
	loss, err := smooth.Quadratic([]float64{0, 0})
	require.NoError(t, err)
	ball, err := seminorm.L2(2, seminorm.Bound(1))
	require.NoError(t, err)
	p, err := composite.New(loss, ball)
	require.NoError(t, err)

	v, err := p.Objective([]float64{3, 4})
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = p.Objective([]float64{0.3, 0.4})
	require.NoError(t, err)
	assert.InDelta(t, 0.125, v, 1e-12, "feasible point: loss only")
}

// TestProx_FusedThenL1MatchesJointForm checks the documented exact
// pair: sequential fused-then-L1 equals the joint fused-lasso prox.
func TestProx_FusedThenL1MatchesJointForm(t *testing.T) {
	loss, err := smooth.Quadratic(make([]float64, 4))
	require.NoError(t, err)
	fused, err := seminorm.Fused(4, seminorm.Lagrange(2))
	require.NoError(t, err)
	l1, err := seminorm.L1(4, seminorm.Lagrange(0.5))
	require.NoError(t, err)
	p, err := composite.New(loss, fused, l1)
	require.NoError(t, err)

	x := []float64{0, 0, 10, 10}
	const step = 0.5
	got, err := p.Prox(nil, x, step)
	require.NoError(t, err)

	want, err := seminorm.FusedLassoProx(nil, x, step*2, step*0.5, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, 1e-12)
}

// TestProx_SkipsEvaluationOnlyAtoms applies only the atoms that carry a
// closed-form prox; transform-composed atoms still count in Nonsmooth.
func TestProx_SkipsEvaluationOnlyAtoms(t *testing.T) {
	loss, err := smooth.Quadratic(make([]float64, 3))
	require.NoError(t, err)
	a, err := affine.NewDense(mat.NewDense(2, 3, []float64{
		1, 1, 0,
		0, 1, 1,
	}))
	require.NoError(t, err)
	evalOnly, err := seminorm.L1(3, seminorm.Lagrange(1), seminorm.WithTransform(a))
	require.NoError(t, err)
	plain, err := seminorm.L1(3, seminorm.Lagrange(2))
	require.NoError(t, err)
	p, err := composite.New(loss, evalOnly, plain)
	require.NoError(t, err)

	x := []float64{-3, 0.5, 2}
	got, err := p.Prox(nil, x, 0.5)
	require.NoError(t, err)
	want, err := plain.Prox(nil, x, 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, 1e-12, "only the plain atom's prox applies")

	nv, err := p.Nonsmooth(x)
	require.NoError(t, err)
	ev, err := evalOnly.Value(x)
	require.NoError(t, err)
	pv, err := plain.Value(x)
	require.NoError(t, err)
	assert.InDelta(t, ev+pv, nv, 1e-12, "evaluation still sums both atoms")
}

// TestProx_NoCapableAtoms returns the point unchanged.
func TestProx_NoCapableAtoms(t *testing.T) {
	loss, err := smooth.Quadratic(make([]float64, 2))
	require.NoError(t, err)
	p, err := composite.New(loss)
	require.NoError(t, err)

	x := []float64{1.5, -2}
	z, err := p.Prox(nil, x, 1)
	require.NoError(t, err)
	assert.Equal(t, x, z)
}
