// Package matrix_test contains unit tests for the Dense storage used by the
// relaxation grid.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/jacobi/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)                      // attempt to create with zero rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(5, 0)                       // attempt to create with zero columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewSquare(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestRowsCols verifies that Rows() and Cols() return correct dimension values.
func TestRowsCols(t *testing.T) {
	rows, cols := 3, 4                    // define expected row and column counts
	m, err := matrix.NewDense(rows, cols) // create a Dense matrix of size 3x4
	require.NoError(t, err)               // assert no error on valid dimensions

	require.Equal(t, rows, m.Rows()) // assert Rows() equals expected rows
	require.Equal(t, cols, m.Cols()) // assert Cols() equals expected cols
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestSetRejectsNaNInf verifies the default finite-only numeric policy.
func TestSetRejectsNaNInf(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
}

// TestRowAliasesStorage checks that Row and RowViews share the backing buffer.
func TestRowAliasesStorage(t *testing.T) {
	m, err := matrix.NewDense(3, 3)
	require.NoError(t, err)

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Len(t, row, 3)
	require.Equal(t, 3, cap(row)) // capped view, append cannot spill into row 2

	row[2] = 5
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 5.0, v)

	views := m.RowViews()
	views[2][0] = -1
	v, err = m.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, -1.0, v)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_ = m.Set(0, 0, 1.0)

	clone := m.Clone()
	_ = clone.Set(0, 0, 3.0) // modify the clone, but not the original

	origVal, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, origVal)

	cloneVal, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, cloneVal)
}

// TestCopyFromAndFill covers whole-buffer copies and shape guards.
func TestCopyFromAndFill(t *testing.T) {
	src, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	src.Fill(2.5)

	dst, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, dst.CopyFrom(src))

	d, err := matrix.MaxAbsDiff(src, dst)
	require.NoError(t, err)
	require.Zero(t, d)

	wrong, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	require.ErrorIs(t, dst.CopyFrom(wrong), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, dst.CopyFrom(nil), matrix.ErrNilMatrix)

	_, err = matrix.MaxAbsDiff(dst, wrong)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestMaxAbsDiff checks the largest absolute element-wise difference.
func TestMaxAbsDiff(t *testing.T) {
	a, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := matrix.NewDenseFrom([][]float64{{1, 2.5}, {0, 4}})
	require.NoError(t, err)

	d, err := matrix.MaxAbsDiff(a, b)
	require.NoError(t, err)
	require.InDelta(t, 3.0, d, 1e-12)
}

// TestNewDenseFrom covers the row-slice constructor.
func TestNewDenseFrom(t *testing.T) {
	_, err := matrix.NewDenseFrom(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	expected := "[1, 2]\n[3, 4]\n"
	require.Equal(t, expected, m.String())
}
