// Package affine provides linear operators and affine maps used to
// pre-compose losses and penalties: dense and sparse matrix backings,
// structural operators (identity, gain, diagonal, first difference),
// operator composition, and adjoint application.
//
// Every Transform exposes forward application y = A·x and adjoint
// application y = Aᵀ·u through caller-supplied destination buffers, so
// solver inner loops stay allocation-free. Transforms are immutable
// after construction and safe for concurrent use.
//
// # Backings
//
//   - Dense      — any gonum mat.Matrix (mat.Dense, mat.SymDense, views, …)
//   - Sparse     — a james-bowman/sparse CSR matrix
//   - Identity   — I
//   - Gain       — c·I
//   - Diagonal   — diag(d)
//   - Difference — first-difference operator D ∈ R^{(n−1)×n}, (Dx)_i = x_{i+1} − x_i
//   - Compose    — A∘B
//
// An Affine couples a Transform with a translation vector b and maps
// x ↦ A·x + b; the adjoint ignores b (translations have no linear part).
//
// # Errors
//
//	ErrDimensionMismatch — operand length disagrees with the operator shape.
//	ErrNilTransform      — a nil Transform was supplied to a constructor.
//
// All errors are sentinels matched with errors.Is; no public entry point
// panics on user input.
package affine
