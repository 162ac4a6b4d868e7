package affine

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Default budgets for PowerNorm.
const (
	DefaultPowerIterations = 500
	DefaultPowerTol        = 1e-8
)

// PowerNorm estimates the spectral norm ‖T‖₂ (largest singular value)
// by power iteration on TᵀT. The estimate converges from below, so
// callers sizing a gradient step from it should keep backtracking
// enabled. maxIts <= 0 and tol <= 0 select the package defaults.
//
// The start vector is drawn from a fixed-seed source, making repeated
// calls on the same operator deterministic.
func PowerNorm(t Transform, maxIts int, tol float64) (float64, error) {
	if t == nil {
		return 0, ErrNilTransform
	}
	if maxIts <= 0 {
		maxIts = DefaultPowerIterations
	}
	if tol <= 0 {
		tol = DefaultPowerTol
	}
	out, in := t.Dims()

	rng := rand.New(rand.NewSource(1)) //nolint:gosec // reproducible start vector, not crypto
	v := make([]float64, in)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	floats.Scale(1/floats.Norm(v, 2), v)

	w := make([]float64, out)
	var (
		sigma float64
		err   error
	)
	for k := 0; k < maxIts; k++ {
		if w, err = t.Apply(w, v); err != nil {
			return 0, fmt.Errorf("affine: PowerNorm iteration %d: %w", k, err)
		}
		if v, err = t.ApplyAdjoint(v, w); err != nil {
			return 0, fmt.Errorf("affine: PowerNorm iteration %d: %w", k, err)
		}
		nrm := floats.Norm(v, 2)
		if nrm == 0 {
			return 0, nil // T maps the start vector to the null space: zero operator in practice
		}
		next := math.Sqrt(nrm)
		floats.Scale(1/nrm, v)
		if math.Abs(next-sigma) <= tol*math.Max(1, next) {
			return next, nil
		}
		sigma = next
	}

	return sigma, nil
}
