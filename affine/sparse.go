package affine

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// csr wraps a compressed-sparse-row matrix as a Transform.
type csr struct {
	m       *sparse.CSR
	out, in int
}

// NewSparse wraps a CSR matrix as a Transform. The matrix is retained,
// not copied; callers must not mutate it afterwards.
func NewSparse(m *sparse.CSR) (Transform, error) {
	if m == nil {
		return nil, ErrNilTransform
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, ErrBadShape
	}

	return csr{m: m, out: r, in: c}, nil
}

// NewSparseCOO assembles an out×in CSR transform from coordinate
// triplets (rows[k], cols[k], vals[k]). Duplicate coordinates sum.
func NewSparseCOO(out, in int, rows, cols []int, vals []float64) (Transform, error) {
	if out <= 0 || in <= 0 {
		return nil, ErrBadShape
	}
	if len(rows) != len(cols) || len(rows) != len(vals) {
		return nil, fmt.Errorf("affine: NewSparseCOO: triplet lengths %d/%d/%d: %w",
			len(rows), len(cols), len(vals), ErrDimensionMismatch)
	}
	coo := sparse.NewCOO(out, in, rows, cols, vals)

	return NewSparse(coo.ToCSR())
}

func (t csr) Dims() (int, int) { return t.out, t.in }

func (t csr) Apply(dst, x []float64) ([]float64, error) {
	if err := checkLen(x, t.in, "Apply"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.out, "Apply")
	if err != nil {
		return nil, err
	}
	for i := range dst {
		dst[i] = 0
	}
	sparse.MulMatRawVec(t.m, x, dst)

	return dst, nil
}

func (t csr) ApplyAdjoint(dst, u []float64) ([]float64, error) {
	if err := checkLen(u, t.out, "ApplyAdjoint"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.in, "ApplyAdjoint")
	if err != nil {
		return nil, err
	}
	for i := range dst {
		dst[i] = 0
	}
	// CSR iteration is row-major; accumulating the transpose product
	// per stored entry avoids materializing Aᵀ.
	t.m.DoNonZero(func(i, j int, v float64) {
		dst[j] += v * u[i]
	})

	return dst, nil
}
