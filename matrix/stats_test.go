// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jacobi/matrix"
)

func TestAllClose(t *testing.T) {
	a, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b := a.Clone()

	ok, err := matrix.AllClose(a, b, 0, 0)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, b.Set(1, 1, 4.001))
	ok, err = matrix.AllClose(a, b, 0, 1e-4)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = matrix.AllClose(a, b, -1e-3, 0)
	require.NoError(t, err)
	require.True(t, ok, "negative rtol is normalized")

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.AllClose(a, nil, 0, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	c, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.AllClose(a, c, 0, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSummarize(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{-2, 0}, {6, 4}})
	require.NoError(t, err)

	s, err := matrix.Summarize(m)
	require.NoError(t, err)
	require.Equal(t, matrix.Summary{Min: -2, Max: 6, Mean: 2}, s)

	_, err = matrix.Summarize(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
