// Package smooth provides the differentiable terms of a composite
// objective.
//
// The smooth package provides:
//
//   - Quadratic (signal approximator) and LeastSquares losses with
//     optional case weights.
//   - LogitLink and Logistic losses for Bernoulli/binomial likelihoods,
//     with optional case weights and trial counts.
//   - Composed for affine pre-composition f(x) = g(A·x + b) with the
//     chain-rule adjoint gradient, and Sum for aggregating terms.
//   - Smoothed, the Moreau envelope of any proximal seminorm atom,
//     turning a non-smooth penalty into a gradient-friendly stand-in
//     for continuation.
//
// Every atom answers ValueGrad(x, grad); a nil grad skips gradient
// work, which is what backtracking line searches want. Atoms may keep
// internal scratch, so share them across goroutines only by building
// one per worker.
package smooth
