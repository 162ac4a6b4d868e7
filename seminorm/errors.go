// Package seminorm: sentinel error set. Constructors and operators
// return these sentinels, wrapped with call-site context where useful;
// callers match with errors.Is.
package seminorm

import "errors"

var (
	// ErrInvalidParametrization rejects an atom built without exactly one
	// of Lagrange/Bound, with a negative or non-finite scalar, or in a
	// form the family has no closed prox for.
	ErrInvalidParametrization = errors.New("seminorm: invalid parametrization")

	// ErrBadDimension rejects a non-positive atom dimension.
	ErrBadDimension = errors.New("seminorm: invalid dimension")

	// ErrDimensionMismatch indicates an operand or option vector whose
	// length disagrees with the atom's dimension.
	ErrDimensionMismatch = errors.New("seminorm: dimension mismatch")

	// ErrNegativeStep rejects a negative or non-finite proximal step.
	ErrNegativeStep = errors.New("seminorm: negative step")

	// ErrNotProxCapable is returned by Prox on atoms composed with a
	// transform that admits no closed-form prox; such atoms evaluate
	// only. Smooth them or reformulate.
	ErrNotProxCapable = errors.New("seminorm: atom has no closed-form prox")
)
