// Package seminorm implements the non-smooth side of a composite
// objective: norm-like penalties and norm-ball constraints with exact
// proximal operators.
//
// 🚀 What is a seminorm atom?
//
//	A term h(x) added to a smooth loss, carrying no gradient but an
//	exact proximal operator
//	    prox_{h,s}(x) = argmin_z (1/(2·s))·‖z − x‖² + h(z),
//	the workhorse of proximal-gradient methods. Each family exists in
//	two parametrizations of the same penalty:
//	  • Lagrange(λ) — penalty form, λ·‖x‖ added to the objective
//	  • Bound(δ)   — constraint form, indicator of {‖x‖ ≤ δ}
//
// ✨ Families and closed forms:
//   - L1  — soft-threshold / L1-ball projection (simplex-type)
//   - L2  — block shrinkage / L2-ball radial projection
//   - Sup — L∞; Moreau decomposition against the L1 ball / box clamp
//   - Fused — λ·‖Dx‖₁ over the first-difference operator, with a direct
//     O(n) total-variation prox
//   - FusedLasso — fused + L1 shrinkage toward a target, joint prox
//
// Every atom may carry an affine offset α (penalizing h(x−α)), an
// identity-quadratic term, and a linear-transform composition. Offsets
// shift the prox (α + prox_h(x−α)); quadratics fold into a shrunken
// step and shifted point; transforms restrict the prox to
// identity/gain compositions (general transforms evaluate only — see
// ProxCapable).
//
// ⚙️ Usage:
//
//	atom, err := seminorm.L1(n, seminorm.Lagrange(2.5))
//	z, err := atom.Prox(nil, x, step) // soft-threshold at 2.5·step
//
// Prox operators run in O(n) (L1/L2/Sup lagrange, boxes, TV) or
// O(n·log n) (ball projections that sort), allocation-free when dst is
// supplied.
package seminorm
