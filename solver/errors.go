// Package solver: sentinel error set. Construction and arming errors
// abort immediately; non-convergence and stagnation are terminal
// statuses on Result, never errors. Callers match with errors.Is.
package solver

import "errors"

var (
	// ErrBadOptions rejects an Options struct that fails validation
	// after defaulting: negative counts, MinIts above MaxIts, a
	// non-finite tolerance, a non-positive Lipschitz estimate, or a
	// backtracking growth factor at or below 1.
	ErrBadOptions = errors.New("solver: invalid options")

	// ErrNotInitialized is returned by Run when the solver has no armed
	// starting point. Call Reset first; each Reset arms exactly one Run.
	ErrNotInitialized = errors.New("solver: not initialized")

	// ErrDimensionMismatch indicates a starting point whose length
	// disagrees with the problem dimension.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")
)
