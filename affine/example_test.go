package affine_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/proxreg/proxreg/affine"
)

// ExampleDifference shows the first-difference operator used by fused
// penalties: (Dx)_i = x_{i+1} − x_i.
func ExampleDifference() {
	d, _ := affine.Difference(5)

	y, _ := d.Apply(nil, []float64{1, 1, 4, 4, 2})
	fmt.Println(y)
	// Output: [0 3 0 -2]
}

// ExampleNewDense wraps a gonum matrix as a Transform and applies it
// together with its adjoint.
func ExampleNewDense() {
	a, _ := affine.NewDense(mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	}))

	y, _ := a.Apply(nil, []float64{1, 1, 1})
	z, _ := a.ApplyAdjoint(nil, []float64{1, 1})
	fmt.Println(y)
	fmt.Println(z)
	// Output:
	// [6 15]
	// [5 7 9]
}
