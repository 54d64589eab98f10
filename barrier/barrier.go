// SPDX-License-Identifier: MIT

package barrier

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidParticipants indicates a barrier was requested for n <= 0 participants.
var ErrInvalidParticipants = errors.New("barrier: participant count must be > 0")

// Barrier synchronizes a fixed group of goroutines at repeated points of a
// parallel algorithm. It is safe for concurrent use; the zero value is not
// usable, construct with New.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	total      int    // participants per round, fixed at construction
	arrived    int    // arrivals in the current round, reset by the releaser
	generation uint64 // round identity, advanced by the releaser
}

// New creates a Barrier for n participants.
// Returns ErrInvalidParticipants when n <= 0.
func New(n int) (*Barrier, error) {
	if n <= 0 {
		return nil, fmt.Errorf("New(%d): %w", n, ErrInvalidParticipants)
	}
	b := &Barrier{total: n}
	b.cond = sync.NewCond(&b.mu)

	return b, nil
}

// Wait blocks until all participants have called Wait for the current
// round. The last arriver resets the count, advances the generation and
// wakes everyone under the same lock; it alone receives true.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.arrived++
	if b.arrived == b.total {
		// Last participant: close the round and release everyone.
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()

		return true
	}

	// Spurious wakeups and broadcasts for later rounds are both filtered by
	// comparing against the generation observed on arrival.
	for gen == b.generation {
		b.cond.Wait()
	}

	return false
}

// Participants returns the number of goroutines per round.
func (b *Barrier) Participants() int { return b.total }

// Generation returns the number of completed rounds.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.generation
}

// Waiting returns how many participants are blocked in the current round.
func (b *Barrier) Waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.arrived
}
