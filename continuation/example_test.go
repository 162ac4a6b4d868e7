package continuation_test

import (
	"fmt"

	"github.com/proxreg/proxreg/continuation"
	"github.com/proxreg/proxreg/seminorm"
	"github.com/proxreg/proxreg/smooth"
	"github.com/proxreg/proxreg/solver"
)

// ExampleSolve sweeps a smoothed lasso down a geometric schedule; the
// last level is a close smooth stand-in for the exact penalty.
func ExampleSolve() {
	loss, _ := smooth.Quadratic([]float64{3, -2, 0.2})
	pen, _ := seminorm.L1(3, seminorm.Lagrange(1))
	eps, _ := continuation.Geometric(1, 1e-3, 4)

	opts := continuation.Options{Solver: solver.DefaultOptions()}
	opts.Solver.Tol = 1e-10
	opts.Solver.MaxIts = 5000

	res, err := continuation.Solve(continuation.Problem{
		Loss:     loss,
		Smoothed: []seminorm.Atom{pen},
	}, eps, make([]float64, 3), opts)
	if err != nil {
		fmt.Println("sweep:", err)

		return
	}

	fmt.Printf("levels=%d x=%.3f\n", len(res.Levels), res.Coefficients)
	// Output:
	// levels=4 x=[2.000 -1.000 0.000]
}
