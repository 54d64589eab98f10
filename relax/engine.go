// SPDX-License-Identifier: MIT

package relax

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/jacobi/barrier"
	"github.com/katalvlaran/jacobi/grid"
)

// Run relaxes g in place with threads workers until the stop rule fires.
//
// Implementation:
//   - Stage 1: resolve options, validate grid, threshold and worker count.
//   - Stage 2: copy Old into New, partition rows, build tracker and barrier.
//   - Stage 3: start one goroutine per assignment and wait for all of them.
//
// All per-run state (tracker, barrier, watchdog) is created here and
// dropped on return, so successive runs never share anything but g.
//
// Errors:
//   - ErrNilGrid, ErrInvalidThreshold, grid.ErrInvalidWorkers, ErrOptionViolation.
//   - ErrNotConverged when WithMaxIterations is exceeded; g holds the last iterate.
//
// Complexity:
//   - Time O(iterations * N² / threads), extra memory O(threads).
func Run(g *grid.Grid, threshold float64, threads int, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Result{}, o.err
	}
	if g == nil || g.Old == nil || g.New == nil {
		return Result{}, ErrNilGrid
	}
	if !validThreshold(threshold) {
		return Result{}, fmt.Errorf("Run(threshold=%g): %w", threshold, ErrInvalidThreshold)
	}

	parts, err := grid.Partition(g.Size, threads, o.Policy)
	if err != nil {
		return Result{}, err
	}
	if err = g.Sync(); err != nil {
		return Result{}, fmt.Errorf("sync buffers: %w", err)
	}
	tracker, err := NewTracker(threads, threshold, o.StopOnZeroSpread)
	if err != nil {
		return Result{}, err
	}
	tracker.hook = o.OnIteration
	bar, err := barrier.New(threads)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Threads:     threads,
		Assignments: parts,
		Uncovered:   grid.Uncovered(g.Size, parts),
	}
	log := o.Logger
	log.Info("relaxation started",
		"size", g.Size, "threads", threads, "threshold", threshold,
		"policy", o.Policy.String(), "uncovered_rows", len(res.Uncovered))

	old, scratch := g.Old.RowViews(), g.New.RowViews()
	iterations := make([]int, threads)

	stop := make(chan struct{})
	if o.StallWarning > 0 {
		go watch(bar, o.StallWarning, log, stop)
	}

	start := time.Now()
	var eg errgroup.Group
	for _, a := range parts {
		w := &worker{
			a:       a,
			size:    g.Size,
			old:     old,
			new:     scratch,
			bar:     bar,
			tracker: tracker,
			maxIter: o.MaxIterations,
		}
		eg.Go(func() error {
			n, werr := w.run()
			iterations[w.a.Worker] = n
			return werr
		})
	}
	err = eg.Wait()
	close(stop)

	res.Elapsed = time.Since(start)
	res.Iterations = iterations[0]
	res.Spread = tracker.Decide(res.Iterations).Spread
	if err != nil {
		log.Warn("relaxation stopped", "iterations", res.Iterations, "spread", res.Spread, "error", err)
		return res, err
	}
	log.Info("relaxation converged",
		"iterations", res.Iterations, "spread", res.Spread, "elapsed", res.Elapsed)

	return res, nil
}

// watch logs a warning each time interval passes without a completed
// barrier round. It only observes; a stalled run stays stalled.
func watch(bar *barrier.Barrier, interval time.Duration, log Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := bar.Generation()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			gen := bar.Generation()
			if gen == last {
				log.Warn("barrier round stalled",
					"generation", gen,
					"waiting", bar.Waiting(),
					"participants", bar.Participants(),
					"interval", interval)
			}
			last = gen
		}
	}
}
