package seminorm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// family supplies the closed forms of one seminorm: the norm itself,
// the prox of t·norm, and the Euclidean projection onto its ball.
// threshold and project tolerate dst aliasing x.
type family interface {
	String() string
	norm(x []float64) float64
	threshold(dst, x []float64, t float64)
	project(dst, x []float64, r float64)
}

// l1Family: ‖x‖₁ with the soft-threshold prox.
type l1Family struct{}

func (l1Family) String() string { return "l1" }

func (l1Family) norm(x []float64) float64 { return floats.Norm(x, 1) }

func (l1Family) threshold(dst, x []float64, t float64) {
	for i, v := range x {
		dst[i] = softThreshold(v, t)
	}
}

func (l1Family) project(dst, x []float64, r float64) { ProjectL1Ball(dst, x, r) }

// l2Family: ‖x‖₂ with the block-shrinkage prox.
type l2Family struct{}

func (l2Family) String() string { return "l2" }

func (l2Family) norm(x []float64) float64 { return floats.Norm(x, 2) }

// threshold shrinks the whole block: x·max(0, 1 − t/‖x‖₂); the origin
// maps to itself.
func (l2Family) threshold(dst, x []float64, t float64) {
	nrm := floats.Norm(x, 2)
	if nrm <= t {
		for i := range dst {
			dst[i] = 0
		}

		return
	}
	c := 1 - t/nrm
	for i, v := range x {
		dst[i] = c * v
	}
}

func (l2Family) project(dst, x []float64, r float64) { ProjectL2Ball(dst, x, r) }

// supFamily: ‖x‖∞. The prox follows the Moreau decomposition against
// its dual, the L1 ball: prox_{t·‖·‖∞}(x) = x − Π_{‖·‖₁ ≤ t}(x).
type supFamily struct{}

func (supFamily) String() string { return "sup" }

func (supFamily) norm(x []float64) float64 { return floats.Norm(x, math.Inf(1)) }

func (supFamily) threshold(dst, x []float64, t float64) {
	proj := ProjectL1Ball(nil, x, t)
	for i, v := range x {
		dst[i] = v - proj[i]
	}
}

func (supFamily) project(dst, x []float64, r float64) { ProjectBox(dst, x, r) }
