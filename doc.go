// Package proxreg is your toolbox for regularized regression and
// composite convex optimization — smooth losses plus non-smooth
// penalties, solved by accelerated proximal gradient.
//
// 🚀 What is proxreg?
//
//	A small, focused numerics library that brings together:
//		• Linear transforms: dense, sparse (CSR), identity, gain, diagonal,
//		  first-difference — forward & adjoint apply
//		• Smooth atoms: least-squares, logistic, signal approximator,
//		  affine pre-composition, sums, quadratic perturbations
//		• Non-smooth atoms: L1 / L2 / sup-norm seminorms in lagrange
//		  (penalty) and bound (constraint) form, offsets, exact proxes
//		• Fused lasso: exact 1-D total-variation prox (taut string)
//		• FISTA solver: backtracking step size, adaptive restart,
//		  wall-clock & context budgets
//		• Continuation: NESTA-style decreasing-smoothing sweeps
//		• Lagrange paths: warm-started λ sequences, KKT checks, k-fold CV
//
// ✨ Why choose proxreg?
//
//   - Exact where it can be – closed-form proximal operators per family
//   - Honest where it can't – statuses, restart ceilings, reported levels
//   - Allocation-aware – caller-provided buffers on every hot path
//   - Composable – one Atom interface, atoms stack into one Problem
//
// Under the hood, everything is organized per concern:
//
//	affine/       — linear transforms & affine maps, forward + adjoint
//	quad/         — the identity-quadratic term and its prox folding
//	seminorm/     — non-smooth atoms: values, proxes, projections, fused/TV
//	smooth/       — smooth atoms: losses, composition, Moreau smoothing
//	composite/    — one loss + ordered atoms = one objective
//	solver/       — accelerated proximal gradient (FISTA)
//	continuation/ — decreasing-epsilon smoothing schedules
//	path/         — lagrange paths, KKT verification, cross-validation
//
// Quick sketch:
//
//	    minimize  ½‖Ax − b‖²  +  λ₁‖Dx‖₁  +  λ₂‖x − t‖₁
//	              └─ smooth ─┘   └─ fused ─┘  └─ shrink ─┘
//
//	a fused-lasso signal approximator: piecewise-constant fit,
//	shrunk toward a target between the jumps.
//
// Dive into the per-package docs for contracts, closed forms and the
// exactness rules for stacked proximal operators.
//
//	go get github.com/proxreg/proxreg
package proxreg
