// Package relax provides tunable options, hooks and error definitions for
// the parallel relaxation engine.
package relax

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/jacobi/grid"
)

// Sentinel errors for engine execution.
var (
	// ErrNilGrid is returned if a nil grid pointer is passed.
	ErrNilGrid = errors.New("relax: grid is nil")

	// ErrInvalidThreshold is returned for a negative or NaN threshold.
	ErrInvalidThreshold = errors.New("relax: threshold must be a finite value >= 0")

	// ErrNotConverged is returned when WithMaxIterations is set and the
	// limit is reached before the stop rule fires.
	ErrNotConverged = errors.New("relax: iteration limit reached before convergence")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("relax: invalid option supplied")
)

// Logger is the subset of a structured logger the engine writes to.
// Arguments are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// IterationStats describes the convergence decision of one iteration.
type IterationStats struct {
	Iteration int       // 1-based
	LocalMax  []float64 // per-worker max(old-new); -Inf for workers without rows
	Largest   float64   // max(0, LocalMax...)
	Smallest  float64   // min(0, LocalMax...)
	Spread    float64   // Largest - Smallest
	Converged bool
}

// Result summarizes a finished run. The relaxed values are in the grid's Old buffer.
type Result struct {
	Iterations  int
	Spread      float64
	Threads     int
	Assignments []grid.Assignment
	Uncovered   []int // interior rows no worker relaxed (PolicyTruncate only)
	Elapsed     time.Duration
}

// Option configures the engine via functional arguments.
// If an Option is invalid (e.g. negative limit), it is recorded internally
// and surfaced as ErrOptionViolation when Run is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize a run.
type Options struct {
	// Policy selects how remainder rows are handled by the partition.
	Policy grid.RemainderPolicy

	// MaxIterations, if > 0, stops the run with ErrNotConverged after that
	// many iterations. 0 means no limit.
	MaxIterations int

	// StopOnZeroSpread treats a spread of exactly 0 as converged. Off by
	// default: a cooling grid reports spread 0 until every cell has moved.
	// Only safe on grids known to be at rest.
	StopOnZeroSpread bool

	// StallWarning, if > 0, starts a watchdog that logs a warning whenever
	// no barrier round completes within that interval.
	StallWarning time.Duration

	// Logger receives run lifecycle and watchdog messages.
	Logger Logger

	// OnIteration is called once per iteration with the convergence
	// decision. It runs while the tracker lock is held and must not block.
	OnIteration func(IterationStats)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - PolicyBalanced partitioning
//   - no iteration limit
//   - zero spread keeps the loop going
//   - no watchdog, no-op logger and hook.
func DefaultOptions() Options {
	return Options{
		Policy:           grid.PolicyBalanced,
		MaxIterations:    0,
		StopOnZeroSpread: false,
		Logger:           nopLogger{},
		OnIteration:      func(IterationStats) {},
	}
}

// WithPolicy selects the remainder policy.
func WithPolicy(p grid.RemainderPolicy) Option {
	return func(o *Options) {
		if p != grid.PolicyBalanced && p != grid.PolicyTruncate {
			o.err = fmt.Errorf("WithPolicy(%d): %w", int(p), ErrOptionViolation)
			return
		}
		o.Policy = p
	}
}

// WithMaxIterations caps the number of iterations. n == 0 disables the cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("WithMaxIterations(%d): %w", n, ErrOptionViolation)
			return
		}
		o.MaxIterations = n
	}
}

// WithStopOnZeroSpread makes a spread of exactly 0 stop the run. Use it
// only for grids already at rest; on a cooling grid the first iterations
// report spread 0 before any cell has relaxed.
func WithStopOnZeroSpread() Option {
	return func(o *Options) {
		o.StopOnZeroSpread = true
	}
}

// WithStallWarning enables the barrier watchdog.
func WithStallWarning(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("WithStallWarning(%s): %w", d, ErrOptionViolation)
			return
		}
		o.StallWarning = d
	}
}

// WithLogger sets the run logger. A nil logger is ignored.
func WithLogger(l Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnIteration registers the per-iteration hook. A nil fn is ignored.
func WithOnIteration(fn func(IterationStats)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnIteration = fn
		}
	}
}

// validThreshold reports whether thr is finite and non-negative.
func validThreshold(thr float64) bool {
	return !math.IsNaN(thr) && !math.IsInf(thr, 0) && thr >= 0
}
