// SPDX-License-Identifier: MIT

package relax

import (
	"fmt"
	"math"

	"github.com/katalvlaran/jacobi/barrier"
	"github.com/katalvlaran/jacobi/grid"
)

// worker relaxes one row range. old and new are row views of the shared
// grid buffers; the worker writes only rows inside its assignment but reads
// the rows directly above and below it.
type worker struct {
	a        grid.Assignment
	size     int
	old, new [][]float64
	bar      *barrier.Barrier
	tracker  *Tracker
	maxIter  int
}

// run loops until the shared decision says stop. Every iteration:
//
//	phase A  new <- avg4(old)   barrier
//	phase B  old <- avg4(new)   barrier
//	publish max(old-new)        barrier
//	decide
//
// It returns the number of iterations executed.
func (w *worker) run() (int, error) {
	for iter := 1; ; iter++ {
		sweep(w.new, w.old, w.a, w.size)
		w.bar.Wait()

		sweep(w.old, w.new, w.a, w.size)
		w.bar.Wait()

		w.tracker.Publish(w.a.Worker, localMax(w.old, w.new, w.a, w.size))
		w.bar.Wait()

		if w.tracker.Decide(iter).Converged {
			return iter, nil
		}
		if w.maxIter > 0 && iter >= w.maxIter {
			return iter, fmt.Errorf("worker %d after %d iterations: %w", w.a.Worker, iter, ErrNotConverged)
		}
	}
}

// sweep writes the 4-neighbor average of src into dst for the rows of a,
// interior columns only.
func sweep(dst, src [][]float64, a grid.Assignment, n int) {
	for i := a.Start; i <= a.End; i++ {
		up, row, down, out := src[i-1], src[i], src[i+1], dst[i]
		for j := 1; j < n-1; j++ {
			out[j] = (up[j] + down[j] + row[j-1] + row[j+1]) / 4.0
		}
	}
}

// localMax returns the signed max of old-new over the rows of a, or -Inf
// when a owns no rows.
func localMax(old, new [][]float64, a grid.Assignment, n int) float64 {
	m := math.Inf(-1)
	for i := a.Start; i <= a.End; i++ {
		o, nw := old[i], new[i]
		for j := 1; j < n-1; j++ {
			if d := o[j] - nw[j]; d > m {
				m = d
			}
		}
	}

	return m
}
