package relax_test

import (
	"fmt"

	"github.com/katalvlaran/jacobi/grid"
	"github.com/katalvlaran/jacobi/relax"
)

// ExampleRun relaxes a 4×4 grid whose only non-zero cell is an interior
// seed. With a zero boundary the solution decays toward zero.
func ExampleRun() {
	g, _ := grid.New(4)
	_ = g.Old.Set(1, 1, 4.0)

	res, err := relax.Run(g, 0.001, 2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	center, _ := g.Old.At(1, 1)
	fmt.Println("iterations:", res.Iterations)
	fmt.Println("center:", center)

	// Output:
	// iterations: 6
	// center: 0.00048828125
}
