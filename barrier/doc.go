// Package barrier provides a cyclic rendezvous point for a fixed number of
// goroutines.
//
// What:
//
//   - Barrier blocks each caller of Wait until all participants of the
//     current round have arrived, then releases them together and resets
//     for the next round.
//   - A generation counter identifies the round. A waiter only leaves once
//     the generation it arrived in has ended, so a fast participant that has
//     already re-entered for round K+1 can never be counted as a round-K
//     arrival by a slow one.
//
// Failure model:
//
//   - There is no timeout and no cancellation. A participant that never
//     arrives blocks the others forever (fail-stop). Generation and Waiting
//     are snapshots for watchdogs that want to report a stalled round.
//
// Errors:
//
//   - ErrInvalidParticipants: New was called with n <= 0.
package barrier
