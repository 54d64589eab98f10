// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"

	"github.com/katalvlaran/jacobi/matrix"
)

// Grid is the double buffer relaxed in place by the solver.
// Old carries the initial values in and the converged values out; New is
// scratch for the intermediate half of each iteration.
type Grid struct {
	Size int
	Old  *matrix.Dense
	New  *matrix.Dense
}

// New allocates a zeroed Size×Size grid.
// Returns ErrInvalidSize when size < 3.
// Complexity: O(size²) time and memory.
func New(size int) (*Grid, error) {
	if size < 3 {
		return nil, fmt.Errorf("New(%d): %w", size, ErrInvalidSize)
	}
	old, err := matrix.NewSquare(size)
	if err != nil {
		return nil, err
	}
	scratch, err := matrix.NewSquare(size)
	if err != nil {
		return nil, err
	}

	return &Grid{Size: size, Old: old, New: scratch}, nil
}

// FromDense builds a grid whose Old buffer is a copy of init and whose New
// buffer starts identical to Old. init is not retained.
// Complexity: O(N²) time and memory.
func FromDense(init *matrix.Dense) (*Grid, error) {
	if err := matrix.ValidateSquare(init); err != nil {
		return nil, fmt.Errorf("FromDense: %w", err)
	}
	if init.Rows() < 3 {
		return nil, fmt.Errorf("FromDense(%d): %w", init.Rows(), ErrInvalidSize)
	}

	return &Grid{Size: init.Rows(), Old: init.Clone(), New: init.Clone()}, nil
}

// Sync copies Old into New so both buffers agree before a run.
func (g *Grid) Sync() error {
	return g.New.CopyFrom(g.Old)
}

// Result returns a copy of the Old buffer, which holds the relaxed values.
func (g *Grid) Result() *matrix.Dense {
	return g.Old.Clone()
}
