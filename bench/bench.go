// SPDX-License-Identifier: MIT

// Package bench times the relaxation engine over a range of worker counts.
//
// Every run reloads the input grid, so each thread count starts from the
// same state, and writes the relaxed grid to the output path. The runs are
// collected into a Report that can be rendered as a terminal table or
// saved as YAML.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/katalvlaran/jacobi/grid"
	"github.com/katalvlaran/jacobi/gridio"
	"github.com/katalvlaran/jacobi/matrix"
	"github.com/katalvlaran/jacobi/relax"
)

// ErrInvalidConfig is returned by Execute for a bad Config.
var ErrInvalidConfig = errors.New("bench: invalid configuration")

// Config describes one benchmark sweep.
type Config struct {
	Input      string
	Output     string // empty skips writing
	Size       int
	Threshold  float64
	MaxThreads int
	Precision  int
	Policy     grid.RemainderPolicy
	// Options are passed to every relax.Run after the policy option.
	Options []relax.Option
}

// Run is the outcome of one thread count.
type Run struct {
	Threads    int     `yaml:"threads"`
	Iterations int     `yaml:"iterations"`
	Spread     float64 `yaml:"spread"`
	ElapsedMS  float64 `yaml:"elapsed_ms"`
	Speedup    float64 `yaml:"speedup"`
	Uncovered  int     `yaml:"uncovered_rows"`
	// MaxDiff is the largest absolute difference from the one-worker result.
	MaxDiff float64 `yaml:"max_diff_vs_serial"`
	// MatchesSerial is MaxDiff within SerialTolerance.
	MatchesSerial bool `yaml:"matches_serial"`
}

// SerialTolerance is the absolute tolerance for MatchesSerial.
const SerialTolerance = 1e-12

// Report holds the sweep parameters and one Run per thread count.
type Report struct {
	Size      int       `yaml:"size"`
	Threshold float64   `yaml:"threshold"`
	Policy    string    `yaml:"policy"`
	Started   time.Time `yaml:"started"`
	Runs      []Run     `yaml:"runs"`
}

// Execute runs the engine for threads = 1..cfg.MaxThreads.
// It stops early if ctx is cancelled between runs or a run fails; the
// partial report is returned alongside the error.
func Execute(ctx context.Context, fs afero.Fs, cfg Config, log relax.Logger) (Report, error) {
	if cfg.MaxThreads < 1 {
		return Report{}, fmt.Errorf("max threads %d: %w", cfg.MaxThreads, ErrInvalidConfig)
	}
	if cfg.Input == "" {
		return Report{}, fmt.Errorf("empty input path: %w", ErrInvalidConfig)
	}

	rep := Report{
		Size:      cfg.Size,
		Threshold: cfg.Threshold,
		Policy:    cfg.Policy.String(),
		Started:   time.Now().UTC(),
		Runs:      make([]Run, 0, cfg.MaxThreads),
	}

	opts := append([]relax.Option{relax.WithPolicy(cfg.Policy)}, cfg.Options...)
	if log != nil {
		opts = append(opts, relax.WithLogger(log))
	}

	var (
		baseline time.Duration
		serial   *matrix.Dense
	)
	for threads := 1; threads <= cfg.MaxThreads; threads++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		r, elapsed, result, err := runOnce(fs, cfg, threads, opts)
		if err != nil {
			return rep, fmt.Errorf("threads=%d: %w", threads, err)
		}
		if threads == 1 {
			baseline, serial = elapsed, result
		}
		r.Speedup = speedup(baseline, elapsed)
		if r.MaxDiff, err = matrix.MaxAbsDiff(result, serial); err != nil {
			return rep, err
		}
		if r.MatchesSerial, err = matrix.AllClose(result, serial, 0, SerialTolerance); err != nil {
			return rep, err
		}
		rep.Runs = append(rep.Runs, r)
	}

	return rep, nil
}

func runOnce(fs afero.Fs, cfg Config, threads int, opts []relax.Option) (Run, time.Duration, *matrix.Dense, error) {
	initial, err := gridio.Read(fs, cfg.Input, cfg.Size)
	if err != nil {
		return Run{}, 0, nil, err
	}
	g, err := grid.FromDense(initial)
	if err != nil {
		return Run{}, 0, nil, err
	}

	res, err := relax.Run(g, cfg.Threshold, threads, opts...)
	if err != nil {
		return Run{}, 0, nil, err
	}
	if cfg.Output != "" {
		if err = gridio.Write(fs, cfg.Output, g.Result(), cfg.Precision); err != nil {
			return Run{}, 0, nil, err
		}
	}

	return Run{
		Threads:    threads,
		Iterations: res.Iterations,
		Spread:     res.Spread,
		ElapsedMS:  float64(res.Elapsed) / float64(time.Millisecond),
		Uncovered:  len(res.Uncovered),
	}, res.Elapsed, g.Result(), nil
}

// speedup is base/d, or 0 when either duration is unmeasurable.
func speedup(base, d time.Duration) float64 {
	if base <= 0 || d <= 0 {
		return 0
	}

	return float64(base) / float64(d)
}
