// Package relax runs a parallel Jacobi relaxation of the Laplace equation
// over a grid.Grid.
//
// What:
//
//   - Run partitions the interior rows among T workers, starts one goroutine
//     per worker and returns once every worker has observed the stop
//     decision. Values converge in place in the grid's Old buffer.
//   - Each iteration performs two Jacobi steps: phase A averages Old into
//     New, phase B averages New back into Old. A barrier separates the
//     phases because every worker reads the rows bordering its neighbors.
//   - After phase B each worker publishes max(old-new) over its rows. The
//     Tracker reduces the published values, with both extremes seeded at 0,
//     into a spread; 0 < spread <= threshold stops the run.
//
// Zero spread:
//
//   - A spread of exactly 0 keeps the loop going. Cells that have not
//     moved yet publish 0 and cooling cells publish negative values, so a
//     spread of 0 is no proof of rest. A grid already at rest therefore
//     never stops on its own: pass WithMaxIterations, or WithStopOnZeroSpread
//     when the input is known to be at rest.
//
// Options:
//
//   - WithPolicy, WithMaxIterations, WithStopOnZeroSpread,
//     WithStallWarning, WithLogger, WithOnIteration.
//
// Errors:
//
//   - ErrNilGrid, ErrInvalidThreshold, ErrNotConverged, ErrOptionViolation,
//     plus grid.ErrInvalidWorkers for a non-positive worker count.
//
// Complexity:
//
//   - O(N²/T) work per worker per iteration, three barrier rounds and two
//     tracker lock acquisitions per worker per iteration.
package relax
