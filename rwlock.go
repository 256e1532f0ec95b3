package spinx

import (
	"sync/atomic"

	"github.com/llxisdsh/spinx/internal/opt"
)

// RWLock is a spin-based reader/writer lock owning a payload of type T.
//
// State encoding (sign-based, int64):
//   - 0: unlocked
//   - n > 0: n read guards outstanding
//   - s <= -rwWriterBias: write-locked; values above -rwWriterBias but below
//     zero account for transient reader increments about to roll back
//
// A writer and any reader are never admitted together. There is no fairness
// guarantee: an unbroken run of readers can starve a writer indefinitely.
// This is a known limitation of the encoding, not a bug.
//
// Properties:
//   - Zero-value usable (unlocked, zero T). Use NewRWLock to seed the payload.
//   - Busy-wait (spinning) with backoff; no parking, no timeouts.
//   - Not re-entrant.
//
// Size: 8 bytes of state (plus padding) + the payload.
type RWLock[T any] struct {
	_     noCopy
	state atomic.Int64
	_     opt.StatePad64_
	data  T
}

const (
	// rwWriterBias is the sentinel subtracted by a successful writer. It is
	// far enough below zero that racing reader increments (each +1, each
	// rolled back) can never drag a write-locked state to a value a reader
	// would mistake for "readable".
	rwWriterBias = 1 << 40

	// rwMaxReaders caps the reader count so TryRead fails cleanly long
	// before the count could collide with the writer range.
	rwMaxReaders = 1 << 30
)

// ReadGuard is proof of shared read access. Any number of read guards may
// coexist on one RWLock.
type ReadGuard[T any] struct {
	rw *RWLock[T]
}

// WriteGuard is proof of exclusive write access. It excludes all other
// guards on the same RWLock.
type WriteGuard[T any] struct {
	rw *RWLock[T]
}

// NewRWLock returns an unlocked RWLock owning data.
func NewRWLock[T any](data T) *RWLock[T] {
	return &RWLock[T]{data: data}
}

// TryRead attempts to register one more reader. It optimistically increments
// the state, then verifies no writer claimed the lock concurrently and the
// reader ceiling is not exceeded; on either condition it rolls the increment
// back and reports failure.
func (rw *RWLock[T]) TryRead() (ReadGuard[T], bool) {
	n := rw.state.Add(1)
	if n <= 0 || n > rwMaxReaders {
		rw.state.Add(-1)
		return ReadGuard[T]{}, false
	}
	return ReadGuard[T]{rw: rw}, true
}

// Read acquires a read lock, spinning with backoff until TryRead succeeds.
func (rw *RWLock[T]) Read() ReadGuard[T] {
	if g, ok := rw.TryRead(); ok {
		return g
	}
	return rw.readSlow()
}

func (rw *RWLock[T]) readSlow() ReadGuard[T] {
	var spins int
	for {
		delay(&spins)
		if g, ok := rw.TryRead(); ok {
			return g
		}
	}
}

// TryWrite attempts to claim exclusive access with a single compare-and-swap
// from exactly "unlocked". Any nonzero state (readers or a writer) fails the
// attempt.
func (rw *RWLock[T]) TryWrite() (WriteGuard[T], bool) {
	if rw.state.CompareAndSwap(0, -rwWriterBias) {
		return WriteGuard[T]{rw: rw}, true
	}
	return WriteGuard[T]{}, false
}

// Write acquires the write lock, spinning with backoff until TryWrite
// succeeds.
func (rw *RWLock[T]) Write() WriteGuard[T] {
	if g, ok := rw.TryWrite(); ok {
		return g
	}
	return rw.writeSlow()
}

func (rw *RWLock[T]) writeSlow() WriteGuard[T] {
	var spins int
	for {
		delay(&spins)
		if g, ok := rw.TryWrite(); ok {
			return g
		}
	}
}

// Value returns the payload for reading. Valid only while the guard is live.
// Mutating through a read guard's pointer is a data race; the shared/exclusive
// split is a caller contract the type system cannot express here.
//
//go:nosplit
func (g ReadGuard[T]) Value() *T {
	return &g.rw.data
}

// Unlock drops this read guard, decrementing the reader count
// (release-ordered).
func (g *ReadGuard[T]) Unlock() {
	rw := g.rw
	g.rw = nil
	rw.state.Add(-1)
}

// Value returns the payload for reading and writing. Valid only while the
// guard is live.
//
//go:nosplit
func (g WriteGuard[T]) Value() *T {
	return &g.rw.data
}

// Unlock drops the write guard. The bias is added back rather than the state
// stored to zero, so reader increments that raced the held lock and are still
// rolling back keep their accounting intact.
func (g *WriteGuard[T]) Unlock() {
	rw := g.rw
	g.rw = nil
	rw.state.Add(rwWriterBias)
}
