package affine

import "fmt"

// Transform is a linear operator A together with its adjoint Aᵀ.
//
// Apply and ApplyAdjoint write into dst and return it; a nil dst
// allocates a fresh slice of the right length. Implementations must not
// mutate x. Dimension mismatches surface as ErrDimensionMismatch; no
// method panics on user input.
type Transform interface {
	// Dims reports the operator's output and input dimensions,
	// i.e. A maps R^in → R^out.
	Dims() (out, in int)

	// Apply computes dst = A·x. len(x) must equal in; len(dst) must
	// equal out when dst is non-nil.
	Apply(dst, x []float64) ([]float64, error)

	// ApplyAdjoint computes dst = Aᵀ·u. len(u) must equal out; len(dst)
	// must equal in when dst is non-nil.
	ApplyAdjoint(dst, u []float64) ([]float64, error)
}

// ensureDst validates or allocates a destination buffer of length n.
func ensureDst(dst []float64, n int, op string) ([]float64, error) {
	if dst == nil {
		return make([]float64, n), nil
	}
	if len(dst) != n {
		return nil, fmt.Errorf("affine: %s: dst length %d, want %d: %w", op, len(dst), n, ErrDimensionMismatch)
	}

	return dst, nil
}

// checkLen validates an input operand length.
func checkLen(x []float64, n int, op string) error {
	if len(x) != n {
		return fmt.Errorf("affine: %s: operand length %d, want %d: %w", op, len(x), n, ErrDimensionMismatch)
	}

	return nil
}

// identity is the I operator on R^n.
type identity struct{ n int }

// Identity returns the identity operator on R^n.
func Identity(n int) (Transform, error) {
	if n <= 0 {
		return nil, ErrBadShape
	}

	return identity{n: n}, nil
}

func (t identity) Dims() (int, int) { return t.n, t.n }

func (t identity) Apply(dst, x []float64) ([]float64, error) {
	if err := checkLen(x, t.n, "Apply"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.n, "Apply")
	if err != nil {
		return nil, err
	}
	copy(dst, x)

	return dst, nil
}

func (t identity) ApplyAdjoint(dst, u []float64) ([]float64, error) {
	return t.Apply(dst, u)
}

// gain is the c·I operator on R^n.
type gain struct {
	n int
	c float64
}

// Gain returns the scaled-identity operator c·I on R^n. Gain transforms
// are "simple enough" for closed-form proximal composition: for a
// positively homogeneous seminorm h, h(c·x) = |c|·h(x).
func Gain(n int, c float64) (Transform, error) {
	if n <= 0 {
		return nil, ErrBadShape
	}

	return gain{n: n, c: c}, nil
}

func (t gain) Dims() (int, int) { return t.n, t.n }

func (t gain) Apply(dst, x []float64) ([]float64, error) {
	if err := checkLen(x, t.n, "Apply"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.n, "Apply")
	if err != nil {
		return nil, err
	}
	for i, v := range x {
		dst[i] = t.c * v
	}

	return dst, nil
}

// ApplyAdjoint equals Apply: (c·I)ᵀ = c·I.
func (t gain) ApplyAdjoint(dst, u []float64) ([]float64, error) {
	return t.Apply(dst, u)
}

// Scale reports the gain factor and true when t is a Gain (or Identity,
// with factor 1). Prox-capable compositions use this to rescale the
// penalty weight instead of running an inner solve.
func Scale(t Transform) (float64, bool) {
	switch v := t.(type) {
	case identity:
		return 1, true
	case gain:
		return v.c, true
	default:
		return 0, false
	}
}

// diagonal is the diag(d) operator.
type diagonal struct{ d []float64 }

// Diagonal returns the operator diag(d). The slice is copied.
func Diagonal(d []float64) (Transform, error) {
	if len(d) == 0 {
		return nil, ErrBadShape
	}
	cp := make([]float64, len(d))
	copy(cp, d)

	return diagonal{d: cp}, nil
}

func (t diagonal) Dims() (int, int) { return len(t.d), len(t.d) }

func (t diagonal) Apply(dst, x []float64) ([]float64, error) {
	if err := checkLen(x, len(t.d), "Apply"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, len(t.d), "Apply")
	if err != nil {
		return nil, err
	}
	for i, v := range x {
		dst[i] = t.d[i] * v
	}

	return dst, nil
}

// ApplyAdjoint equals Apply: diagonal operators are self-adjoint.
func (t diagonal) ApplyAdjoint(dst, u []float64) ([]float64, error) {
	return t.Apply(dst, u)
}
