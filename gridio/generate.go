// SPDX-License-Identifier: MIT

package gridio

import (
	"fmt"

	"github.com/katalvlaran/jacobi/matrix"
)

// Boundary describes a generated input grid: one value per edge and one
// for every interior cell. Corners take the Top or Bottom value.
type Boundary struct {
	Top, Bottom, Left, Right float64
	Interior                 float64
}

// Generate builds an n×n grid from b.
func Generate(n int, b Boundary) (*matrix.Dense, error) {
	if n < 3 {
		return nil, fmt.Errorf("Generate(%d): %w", n, matrix.ErrInvalidDimensions)
	}
	m, err := matrix.NewSquare(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := b.Interior
			switch {
			case i == 0:
				v = b.Top
			case i == n-1:
				v = b.Bottom
			case j == 0:
				v = b.Left
			case j == n-1:
				v = b.Right
			}
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
