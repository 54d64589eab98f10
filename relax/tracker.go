// SPDX-License-Identifier: MIT

package relax

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/jacobi/grid"
)

// Tracker collects each worker's local maximum difference and turns them
// into one stop decision per iteration. All state belongs to a single run.
type Tracker struct {
	mu        sync.Mutex
	local     []float64
	threshold float64
	stopZero  bool
	hook      func(IterationStats)

	decided  int // iteration of the cached decision, 0 before the first
	decision IterationStats
}

// NewTracker creates a tracker with one slot per worker.
func NewTracker(workers int, threshold float64, stopOnZeroSpread bool) (*Tracker, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("NewTracker(%d): %w", workers, grid.ErrInvalidWorkers)
	}
	if !validThreshold(threshold) {
		return nil, fmt.Errorf("NewTracker(%g): %w", threshold, ErrInvalidThreshold)
	}
	local := make([]float64, workers)
	for i := range local {
		local[i] = math.Inf(-1)
	}

	return &Tracker{local: local, threshold: threshold, stopZero: stopOnZeroSpread}, nil
}

// Publish records worker's local maximum for the current iteration.
func (t *Tracker) Publish(worker int, localMax float64) {
	t.mu.Lock()
	t.local[worker] = localMax
	t.mu.Unlock()
}

// Decide returns the stop decision for iteration. The first caller for a
// given iteration computes it; later callers get the cached value, so every
// worker observes the same answer.
//
// Both extremes are seeded at 0: the spread is measured against zero, not
// against the first sample. Slots still at -Inf (workers without rows) are
// skipped.
func (t *Tracker) Decide(iteration int) IterationStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.decided == iteration {
		return t.decision
	}

	largest, smallest := 0.0, 0.0
	for _, v := range t.local {
		if math.IsInf(v, -1) {
			continue
		}
		if v > largest {
			largest = v
		}
		if v < smallest {
			smallest = v
		}
	}
	spread := largest - smallest

	converged := false
	if spread == 0 {
		converged = t.stopZero
	} else if spread <= t.threshold {
		converged = true
	}

	snapshot := make([]float64, len(t.local))
	copy(snapshot, t.local)
	t.decision = IterationStats{
		Iteration: iteration,
		LocalMax:  snapshot,
		Largest:   largest,
		Smallest:  smallest,
		Spread:    spread,
		Converged: converged,
	}
	t.decided = iteration
	if t.hook != nil {
		t.hook(t.decision)
	}

	return t.decision
}
