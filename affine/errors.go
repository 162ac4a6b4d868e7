// Package affine: sentinel error set. All public entry points return
// these sentinels (possibly wrapped with call-site context via %w);
// tests and callers match them with errors.Is.
package affine

import "errors"

var (
	// ErrDimensionMismatch indicates an operand whose length disagrees
	// with the operator's input or output dimension.
	ErrDimensionMismatch = errors.New("affine: dimension mismatch")

	// ErrNilTransform indicates a nil Transform passed to a constructor.
	ErrNilTransform = errors.New("affine: nil transform")

	// ErrBadShape is returned when a constructor receives a non-positive
	// dimension or an empty backing.
	ErrBadShape = errors.New("affine: invalid shape")
)
