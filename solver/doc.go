// Package solver minimizes composite objectives F(x) = f(x) + Σ h_j(x)
// with the accelerated proximal-gradient method (FISTA), backtracking
// line search and adaptive momentum restarts.
//
// 🚀 What is FISTA?
//
//	Plain gradient descent on f plus a proximal step on each h keeps
//	the O(1/k) rate of the subgradient method. FISTA evaluates the
//	gradient at an extrapolated point carrying momentum from the
//	previous step, which lifts the rate to O(1/k²) at the cost of one
//	extra vector. It is the workhorse behind:
//	  • lasso / elastic-net regression
//	  • fused-lasso signal denoising
//	  • sparse logistic classification
//	  • constrained least squares (norm-ball projections)
//
// ✨ Key features:
//   - backtracking Lipschitz search: start anywhere, L grows by a fixed
//     factor until the quadratic model majorizes f (retrials are free —
//     they do not consume iterations)
//   - adaptive restart: a candidate that would raise the objective is
//     discarded and momentum resets, making accepted objectives monotone
//   - stagnation guard: MaxRestarts consecutive no-progress restarts
//     terminate the run with the best iterate instead of looping
//   - warm starts: the backtracked Lipschitz estimate survives Reset,
//     so continuation schedules and lagrange paths reuse it
//   - budget controls: MaxIts, wall-clock Timeout, context cancellation
//
// ⚙️ Usage:
//
//	import "github.com/proxreg/proxreg/solver"
//
//	opts := solver.DefaultOptions()
//	opts.Tol = 1e-10    // relative objective change
//	opts.MaxIts = 200
//
//	res, err := solver.Solve(problem, make([]float64, problem.Dim()), opts)
//	if err != nil {
//	  // invalid options, wrong x0 length, or canceled context
//	}
//	switch res.Status {
//	case solver.Converged:
//	  // res.Coefficients is the minimizer
//	case solver.MaxIterations, solver.Stagnated:
//	  // budget ran out — res.Coefficients is the best iterate seen
//	}
//
// Performance:
//
//   - Time:   O(MaxIts · cost(∇f + prox)) — gradient and prox dominate
//   - Memory: four n-vectors beyond the problem itself
//
// See example_test.go for an end-to-end lasso fit.
package solver
