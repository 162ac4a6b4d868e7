package smooth

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/proxreg/proxreg/affine"
	"github.com/proxreg/proxreg/quad"
)

// composedAtom evaluates g(A·x + b) with gradient Aᵀ·∇g(A·x + b).
type composedAtom struct {
	g    Atom
	af   *affine.Affine
	dim  int       // ambient (input) dimension
	eta  []float64 // scratch: A·x + b
	geta []float64 // scratch: ∇g at eta
	q    *quad.Term
}

// Composed pre-composes a smooth atom with an affine map:
// f(x) = g(A·x + offset), ∇f(x) = Aᵀ·∇g(A·x + offset). Options:
// WithQuadratic (coefficient space). Weights and trials belong to the
// base loss and are rejected here.
func Composed(g Atom, a affine.Transform, offset []float64, opts ...Option) (Atom, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.weights != nil || cfg.trials != nil {
		return nil, fmt.Errorf("smooth: Composed: weights and trials belong to the base loss: %w", ErrBadData)
	}

	return newComposed(g, a, offset, cfg.quadratic)
}

func newComposed(g Atom, a affine.Transform, offset []float64, q *quad.Term) (Atom, error) {
	if g == nil {
		return nil, fmt.Errorf("smooth: Composed: %w", ErrNilAtom)
	}
	if a == nil {
		return nil, fmt.Errorf("smooth: Composed: nil transform: %w", ErrNilAtom)
	}
	out, in := a.Dims()
	if out != g.Dim() {
		return nil, fmt.Errorf("smooth: Composed: transform output %d, atom dim %d: %w",
			out, g.Dim(), ErrDimensionMismatch)
	}
	af, err := affine.NewAffine(a, offset)
	if err != nil {
		return nil, fmt.Errorf("smooth: Composed: %w", err)
	}
	if err := q.Check(in); err != nil {
		return nil, fmt.Errorf("smooth: Composed: quadratic: %w", ErrDimensionMismatch)
	}

	return &composedAtom{
		g:    g,
		af:   af,
		dim:  in,
		eta:  make([]float64, out),
		geta: make([]float64, out),
		q:    q,
	}, nil
}

func (f *composedAtom) Dim() int { return f.dim }

func (f *composedAtom) ValueGrad(x, grad []float64) (float64, error) {
	if err := checkOperands(x, grad, f.dim); err != nil {
		return 0, err
	}
	if _, err := f.af.Map(f.eta, x); err != nil {
		return 0, err
	}
	inner := f.geta
	if grad == nil {
		inner = nil
	}
	v, err := f.g.ValueGrad(f.eta, inner)
	if err != nil {
		return 0, err
	}
	if grad != nil {
		if _, err := f.af.ApplyAdjoint(grad, f.geta); err != nil {
			return 0, err
		}
		f.q.AddGradient(grad, x)
	}
	v += f.q.Objective(x)

	return v, nil
}

// sumAtom adds smooth atoms over one shared coefficient vector.
type sumAtom struct {
	atoms []Atom
	buf   []float64
}

// Sum aggregates smooth atoms of equal dimension into a single atom.
// A one-element sum returns that atom unchanged.
func Sum(atoms ...Atom) (Atom, error) {
	if len(atoms) == 0 {
		return nil, fmt.Errorf("smooth: Sum: no atoms: %w", ErrNilAtom)
	}
	for i, a := range atoms {
		if a == nil {
			return nil, fmt.Errorf("smooth: Sum: atom %d: %w", i, ErrNilAtom)
		}
		if a.Dim() != atoms[0].Dim() {
			return nil, fmt.Errorf("smooth: Sum: atom %d has dim %d, want %d: %w",
				i, a.Dim(), atoms[0].Dim(), ErrDimensionMismatch)
		}
	}
	if len(atoms) == 1 {
		return atoms[0], nil
	}

	return &sumAtom{
		atoms: append([]Atom(nil), atoms...),
		buf:   make([]float64, atoms[0].Dim()),
	}, nil
}

func (f *sumAtom) Dim() int { return f.atoms[0].Dim() }

func (f *sumAtom) ValueGrad(x, grad []float64) (float64, error) {
	var total float64
	for i, a := range f.atoms {
		dst := grad
		if grad != nil && i > 0 {
			dst = f.buf
		}
		v, err := a.ValueGrad(x, dst)
		if err != nil {
			return 0, err
		}
		total += v
		if grad != nil && i > 0 {
			floats.Add(grad, f.buf)
		}
	}

	return total, nil
}
