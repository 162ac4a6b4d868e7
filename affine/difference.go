package affine

// difference is the first-difference operator D ∈ R^{(n−1)×n} with
// (Dx)_i = x_{i+1} − x_i. It is the fused-penalty transform: ‖Dx‖₁ is
// the total variation of x.
type difference struct{ n int }

// Difference returns the first-difference operator on R^n (n ≥ 2).
func Difference(n int) (Transform, error) {
	if n < 2 {
		return nil, ErrBadShape
	}

	return difference{n: n}, nil
}

func (t difference) Dims() (int, int) { return t.n - 1, t.n }

func (t difference) Apply(dst, x []float64) ([]float64, error) {
	if err := checkLen(x, t.n, "Apply"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.n-1, "Apply")
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.n-1; i++ {
		dst[i] = x[i+1] - x[i]
	}

	return dst, nil
}

// ApplyAdjoint computes Dᵀu: (Dᵀu)_0 = −u_0, (Dᵀu)_i = u_{i−1} − u_i for
// interior i, (Dᵀu)_{n−1} = u_{n−2}.
func (t difference) ApplyAdjoint(dst, u []float64) ([]float64, error) {
	if err := checkLen(u, t.n-1, "ApplyAdjoint"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.n, "ApplyAdjoint")
	if err != nil {
		return nil, err
	}
	dst[0] = -u[0]
	for i := 1; i < t.n-1; i++ {
		dst[i] = u[i-1] - u[i]
	}
	dst[t.n-1] = u[t.n-2]

	return dst, nil
}
