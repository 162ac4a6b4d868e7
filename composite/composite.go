// Package composite assembles one smooth loss and an ordered list of
// nonsmooth atoms into a single objective
//
//	F(x) = f(x) + Σ_j h_j(x)
//
// over one shared coefficient vector. The solver consumes it through
// four calls: Smooth (value + gradient of f), Nonsmooth (Σ h_j),
// Objective (their sum), and Prox (the proximal step through the
// prox-capable atoms).
//
// Prox applies the atoms' proximal operators sequentially, in the order
// given at construction, skipping evaluation-only atoms (those composed
// with a general transform). The composition is exact for at most one
// prox-capable atom and for the fused-then-L1 pair; other stacks are a
// heuristic approximation — smooth the extras instead when exactness
// matters.
package composite

import (
	"fmt"

	"github.com/proxreg/proxreg/seminorm"
	"github.com/proxreg/proxreg/smooth"
)

// Problem is an immutable composite objective. Its atoms may carry
// internal scratch, so a Problem is single-goroutine; build one per
// worker.
type Problem struct {
	loss  smooth.Atom
	atoms []seminorm.Atom
	dim   int
}

// New validates that every term lives in the same coefficient space and
// assembles the composite. Atom order is preserved and is the Prox
// application order.
func New(loss smooth.Atom, atoms ...seminorm.Atom) (*Problem, error) {
	if loss == nil {
		return nil, fmt.Errorf("composite: New: loss: %w", ErrNilAtom)
	}
	dim := loss.Dim()
	for i, a := range atoms {
		if a == nil {
			return nil, fmt.Errorf("composite: New: atom %d: %w", i, ErrNilAtom)
		}
		if a.Dim() != dim {
			return nil, fmt.Errorf("composite: New: atom %d has dim %d, loss has %d: %w",
				i, a.Dim(), dim, ErrDimensionMismatch)
		}
	}

	return &Problem{
		loss:  loss,
		atoms: append([]seminorm.Atom(nil), atoms...),
		dim:   dim,
	}, nil
}

// Dim is the shared coefficient dimension.
func (p *Problem) Dim() int { return p.dim }

// Smooth evaluates the loss at x; grad, when non-nil, receives ∇f(x).
func (p *Problem) Smooth(x, grad []float64) (float64, error) {
	return p.loss.ValueGrad(x, grad)
}

// Nonsmooth sums the penalty values at x. A violated bound-form
// constraint makes it +Inf.
func (p *Problem) Nonsmooth(x []float64) (float64, error) {
	var total float64
	for _, a := range p.atoms {
		v, err := a.Value(x)
		if err != nil {
			return 0, err
		}
		total += v
	}

	return total, nil
}

// Objective is the total composite value f(x) + Σ h_j(x).
func (p *Problem) Objective(x []float64) (float64, error) {
	sv, err := p.Smooth(x, nil)
	if err != nil {
		return 0, err
	}
	nv, err := p.Nonsmooth(x)
	if err != nil {
		return 0, err
	}

	return sv + nv, nil
}

// Prox writes the proximal step through the prox-capable atoms into dst
// (nil allocates): dst starts at x and each capable atom's Prox is
// applied in order at the given step. Evaluation-only atoms are
// skipped. With no capable atoms the result is x itself.
func (p *Problem) Prox(dst, x []float64, step float64) ([]float64, error) {
	if len(x) != p.dim {
		return nil, fmt.Errorf("composite: Prox: operand length %d, want %d: %w",
			len(x), p.dim, ErrDimensionMismatch)
	}
	if dst == nil {
		dst = make([]float64, p.dim)
	} else if len(dst) != p.dim {
		return nil, fmt.Errorf("composite: Prox: dst length %d, want %d: %w",
			len(dst), p.dim, ErrDimensionMismatch)
	}
	copy(dst, x)
	for _, a := range p.atoms {
		if !a.ProxCapable() {
			continue
		}
		if _, err := a.Prox(dst, dst, step); err != nil {
			return nil, err
		}
	}

	return dst, nil
}
