package affine

import (
	"gonum.org/v1/gonum/mat"
)

// dense wraps any gonum matrix as a Transform.
type dense struct {
	m       mat.Matrix
	out, in int
}

// NewDense wraps a gonum matrix as a Transform. The matrix is retained,
// not copied; callers must not mutate it afterwards.
func NewDense(m mat.Matrix) (Transform, error) {
	if m == nil {
		return nil, ErrNilTransform
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, ErrBadShape
	}

	return dense{m: m, out: r, in: c}, nil
}

func (t dense) Dims() (int, int) { return t.out, t.in }

func (t dense) Apply(dst, x []float64) ([]float64, error) {
	if err := checkLen(x, t.in, "Apply"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.out, "Apply")
	if err != nil {
		return nil, err
	}
	// NewVecDense wraps the slices without copying, so MulVec writes
	// straight into dst.
	y := mat.NewVecDense(t.out, dst)
	y.MulVec(t.m, mat.NewVecDense(t.in, x))

	return dst, nil
}

func (t dense) ApplyAdjoint(dst, u []float64) ([]float64, error) {
	if err := checkLen(u, t.out, "ApplyAdjoint"); err != nil {
		return nil, err
	}
	dst, err := ensureDst(dst, t.in, "ApplyAdjoint")
	if err != nil {
		return nil, err
	}
	y := mat.NewVecDense(t.in, dst)
	y.MulVec(t.m.T(), mat.NewVecDense(t.out, u))

	return dst, nil
}
