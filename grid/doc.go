// Package grid holds the double-buffered square grid relaxed by the solver
// and the row partitioning that splits its interior among workers.
//
// What:
//
//   - Grid owns two N×N matrix.Dense buffers, Old and New. Both are fully
//     allocated before any worker starts and New starts as a copy of Old.
//     Rows and columns 0 and N-1 are boundary conditions and are never
//     written by a sweep.
//   - Assignment is the immutable, inclusive row range [Start, End] given to
//     one worker. Partition computes all assignments for a worker count.
//
// Remainder policy:
//
//   - PolicyBalanced (default) spreads the N-2 interior rows so that range
//     lengths differ by at most one; every interior row is covered exactly
//     once for any worker count.
//   - PolicyTruncate keeps the classic rowcount = N/T scheme: worker i starts
//     at i*rowcount+1 and the last end row is clamped to N-2 when it lands on
//     N-1 or N. When N mod T > 2 the rows past T*rowcount are never relaxed.
//
// Errors:
//
//   - ErrInvalidSize: N < 3 (no interior).
//   - ErrInvalidWorkers: worker count <= 0.
//   - ErrUnknownPolicy: RemainderPolicy out of range.
package grid
