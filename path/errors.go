// Package path: sentinel error set. Matched with errors.Is.
package path

import "errors"

var (
	// ErrBadSequence rejects a lagrange sequence that is empty, carries
	// a non-positive or non-finite weight, or is not strictly
	// decreasing. DefaultLagrangeSequence returns it when the gradient
	// at the origin gives no usable λ_max.
	ErrBadSequence = errors.New("path: invalid lagrange sequence")

	// ErrBadFolds rejects a cross-validation split with fewer than two
	// folds or more folds than cases.
	ErrBadFolds = errors.New("path: invalid fold count")

	// ErrNilComponent indicates a nil loss atom, penalty factory, or
	// loss builder where one is required.
	ErrNilComponent = errors.New("path: nil component")

	// ErrDimensionMismatch indicates vectors whose lengths disagree
	// with each other or with the loss dimension.
	ErrDimensionMismatch = errors.New("path: dimension mismatch")
)
