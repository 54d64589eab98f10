// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Whole-buffer reductions over Dense: tolerance comparison and a value summary.
//   - Both run over the flat buffer in a fixed order, so results are deterministic.

package matrix

import (
	"fmt"
	"math"
)

const (
	opAllClose  = "AllClose"
	opSummarize = "Summarize"
)

// Summary describes the value range of a matrix.
type Summary struct {
	Min, Max, Mean float64
}

func statsErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
// Negative tolerances are normalized to their absolute value.
//
// Errors:
//   - ErrNaNInf for non-finite tolerances.
//   - ErrNilMatrix, ErrDimensionMismatch from validation.
//
// Complexity: O(r*c) time, O(1) space; exits on the first violation.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, statsErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateNotNil(a); err != nil {
		return false, statsErrorf(opAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, statsErrorf(opAllClose, err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, statsErrorf(opAllClose, err)
	}

	for idx, bv := range b.data {
		if math.Abs(a.data[idx]-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}

// Summarize returns the minimum, maximum and mean of m.
// Complexity: O(r*c) time, O(1) space.
func Summarize(m *Dense) (Summary, error) {
	if err := ValidateNotNil(m); err != nil {
		return Summary{}, statsErrorf(opSummarize, err)
	}

	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for _, v := range m.data {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(m.data))

	return s, nil
}
