// Package smooth: sentinel error set. Constructors and evaluators
// return these sentinels wrapped with call-site context; callers match
// with errors.Is.
package smooth

import "errors"

var (
	// ErrDimensionMismatch indicates an operand, gradient buffer, or
	// option vector whose length disagrees with the atom's dimension.
	ErrDimensionMismatch = errors.New("smooth: dimension mismatch")

	// ErrBadEpsilon rejects a non-positive or non-finite smoothing
	// temperature.
	ErrBadEpsilon = errors.New("smooth: non-positive epsilon")

	// ErrNilAtom rejects a nil atom or transform operand.
	ErrNilAtom = errors.New("smooth: nil atom")

	// ErrBadData rejects loss data that cannot define a convex
	// likelihood: negative weights, successes exceeding trials, empty
	// targets.
	ErrBadData = errors.New("smooth: invalid loss data")
)
