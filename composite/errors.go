// Package composite: sentinel error set. Matched with errors.Is.
package composite

import "errors"

var (
	// ErrNilAtom rejects a nil loss or penalty atom at construction.
	ErrNilAtom = errors.New("composite: nil atom")

	// ErrDimensionMismatch indicates terms whose ambient dimensions
	// disagree, or an operand of the wrong length.
	ErrDimensionMismatch = errors.New("composite: dimension mismatch")
)
