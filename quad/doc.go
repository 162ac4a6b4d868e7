// Package quad implements the identity-quadratic term
//
//	q(x) = (Coef/2)·‖x − Center‖² + ⟨Linear, x⟩ + Constant,
//
// the one perturbation every atom in this module can carry. Smooth
// atoms add q to their value and gradient; proximal atoms fold q into
// the subproblem instead: minimizing
//
//	(1/(2·step))‖z − x‖² + q(z) + h(z)
//
// equals prox of h alone at a shrunken step and shifted point
// (ProxShift). Keeping the fold here means every penalty family gets
// quadratic support without touching its closed-form prox.
//
// A nil *Term behaves as the identically-zero function everywhere, so
// callers never branch on presence.
package quad
