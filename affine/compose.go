package affine

import "fmt"

// composed chains two operators: (A∘B)(x) = A(B(x)).
type composed struct {
	a, b Transform // a is applied second
	mid  int       // shared inner dimension
}

// Compose returns the operator A∘B (B applied first). The inner
// dimensions must agree: in(A) == out(B).
func Compose(a, b Transform) (Transform, error) {
	if a == nil || b == nil {
		return nil, ErrNilTransform
	}
	_, aIn := a.Dims()
	bOut, _ := b.Dims()
	if aIn != bOut {
		return nil, fmt.Errorf("affine: Compose: inner dims %d and %d: %w", aIn, bOut, ErrDimensionMismatch)
	}

	return composed{a: a, b: b, mid: aIn}, nil
}

func (t composed) Dims() (int, int) {
	out, _ := t.a.Dims()
	_, in := t.b.Dims()

	return out, in
}

func (t composed) Apply(dst, x []float64) ([]float64, error) {
	mid, err := t.b.Apply(nil, x)
	if err != nil {
		return nil, err
	}

	return t.a.Apply(dst, mid)
}

func (t composed) ApplyAdjoint(dst, u []float64) ([]float64, error) {
	mid, err := t.a.ApplyAdjoint(nil, u)
	if err != nil {
		return nil, err
	}

	return t.b.ApplyAdjoint(dst, mid)
}

// Affine couples a linear operator with a translation: x ↦ A·x + b.
// A nil Offset means a pure linear map. The adjoint of the linear part
// is reachable through Transform.
type Affine struct {
	Transform
	Offset []float64 // length must equal the output dimension; nil for none
}

// NewAffine builds an affine map from a Transform and an optional
// translation vector (copied).
func NewAffine(t Transform, offset []float64) (*Affine, error) {
	if t == nil {
		return nil, ErrNilTransform
	}
	out, _ := t.Dims()
	if offset != nil && len(offset) != out {
		return nil, fmt.Errorf("affine: NewAffine: offset length %d, want %d: %w", len(offset), out, ErrDimensionMismatch)
	}
	var cp []float64
	if offset != nil {
		cp = make([]float64, out)
		copy(cp, offset)
	}

	return &Affine{Transform: t, Offset: cp}, nil
}

// Map computes dst = A·x + b.
func (a *Affine) Map(dst, x []float64) ([]float64, error) {
	dst, err := a.Apply(dst, x)
	if err != nil {
		return nil, err
	}
	if a.Offset != nil {
		for i, v := range a.Offset {
			dst[i] += v
		}
	}

	return dst, nil
}
