// Package path fits regularization paths: the same composite problem
// solved over a decreasing grid of penalty weights, the way lasso and
// group-lasso models are actually tuned.
//
// 🚀 Why a path?
//
//	A single λ is rarely known in advance. Solving from λ_max (where
//	the solution is exactly zero) down a geometric grid costs little
//	more than the final solve alone: each point warm-starts from the
//	previous solution and inherits its backtracked Lipschitz estimate,
//	and the active set grows a few coordinates at a time.
//
// ✨ Key features:
//   - DefaultLagrangeSequence: the standard grid from λ_max = ‖∇f(0)‖∞
//     down to a proportion of it
//   - Fit: the warm-started driver — one Point per λ with solution,
//     objective, solver report and a KKT certificate
//   - CheckKKT: first-order stationarity for lasso-form objectives,
//     usable on any (gradient, solution, λ) triple
//   - CrossValidate: k contiguous folds carved out by case weights on
//     the loss, solved concurrently, scored by held-out loss per case
//
// ⚙️ Usage:
//
//	import "github.com/proxreg/proxreg/path"
//
//	loss, _ := smooth.LeastSquares(a, b)
//	penalty := func(l float64) (seminorm.Atom, error) {
//		return seminorm.L1(p, seminorm.Lagrange(l))
//	}
//
//	lambdas, _ := path.DefaultLagrangeSequence(loss, 50)
//	res, err := path.Fit(loss, penalty, lambdas, nil, path.Options{})
//	if err != nil { ... }
//	for _, pt := range res.Points {
//		fmt.Println(pt.Lagrange, pt.Objective, len(pt.KKT))
//	}
//
// Cross-validation picks λ instead of eyeballing the path:
//
//	build := func(w []float64) (smooth.Atom, error) {
//		return smooth.LeastSquares(a, b, smooth.WithWeights(w))
//	}
//	cv, err := path.CrossValidate(build, penalty, lambdas, m, 5, path.Options{})
//	// cv.BestLagrange minimizes the mean held-out loss
//
// Performance:
//
//   - Time:   Σ solves — warm starts make late points cheap; folds run
//     in parallel up to Options.Parallel
//   - Memory: one gradient buffer per path plus the recorded Points
//
// See example_test.go for an end-to-end cross-validated lasso.
package path
