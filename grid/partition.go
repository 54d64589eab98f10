// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"strings"
)

// RemainderPolicy selects what happens to interior rows that do not divide
// evenly among workers.
type RemainderPolicy int

const (
	// PolicyBalanced covers every interior row; range lengths differ by at most one.
	PolicyBalanced RemainderPolicy = iota
	// PolicyTruncate uses rowcount = N/T and may leave trailing rows uncovered.
	PolicyTruncate
)

// String returns the lowercase policy name used by flags and config.
func (p RemainderPolicy) String() string {
	switch p {
	case PolicyBalanced:
		return "balanced"
	case PolicyTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("RemainderPolicy(%d)", int(p))
	}
}

// ParsePolicy maps "balanced" or "truncate" (case-insensitive) to a policy.
func ParsePolicy(s string) (RemainderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "balanced":
		return PolicyBalanced, nil
	case "truncate":
		return PolicyTruncate, nil
	default:
		return 0, fmt.Errorf("ParsePolicy(%q): %w", s, ErrUnknownPolicy)
	}
}

// Assignment is one worker's inclusive interior row range.
// An assignment with End < Start owns no rows; its worker still takes part
// in every barrier round.
type Assignment struct {
	Worker  int // zero-based worker index
	Workers int // total worker count
	Start   int // first row, >= 1
	End     int // last row, <= N-2
}

// Empty reports whether the assignment owns no rows.
func (a Assignment) Empty() bool { return a.End < a.Start }

// Len returns the number of rows owned.
func (a Assignment) Len() int {
	if a.Empty() {
		return 0
	}

	return a.End - a.Start + 1
}

// Partition splits the interior rows 1..n-2 of an n×n grid among t workers.
// Complexity: O(t).
func Partition(n, t int, policy RemainderPolicy) ([]Assignment, error) {
	if n < 3 {
		return nil, fmt.Errorf("Partition(n=%d): %w", n, ErrInvalidSize)
	}
	if t <= 0 {
		return nil, fmt.Errorf("Partition(t=%d): %w", t, ErrInvalidWorkers)
	}

	out := make([]Assignment, t)
	switch policy {
	case PolicyBalanced:
		interior := n - 2
		for i := 0; i < t; i++ {
			out[i] = Assignment{
				Worker:  i,
				Workers: t,
				Start:   1 + i*interior/t,
				End:     (i + 1) * interior / t, // 1 + (i+1)*m/t - 1
			}
		}
	case PolicyTruncate:
		rowcount := n / t
		for i := 0; i < t; i++ {
			start := i*rowcount + 1
			end := start + rowcount - 1
			if end == n-1 || end == n {
				end = n - 2
			}
			out[i] = Assignment{Worker: i, Workers: t, Start: start, End: end}
		}
	default:
		return nil, fmt.Errorf("Partition(policy=%d): %w", int(policy), ErrUnknownPolicy)
	}

	return out, nil
}

// Uncovered lists interior rows owned by no assignment, in ascending order.
// Always empty under PolicyBalanced.
func Uncovered(n int, parts []Assignment) []int {
	if n < 3 {
		return nil
	}
	seen := make([]bool, n)
	for _, a := range parts {
		for r := a.Start; r <= a.End; r++ {
			if r > 0 && r < n-1 {
				seen[r] = true
			}
		}
	}
	var rows []int
	for r := 1; r <= n-2; r++ {
		if !seen[r] {
			rows = append(rows, r)
		}
	}

	return rows
}
