package spinx

import (
	"sync/atomic"

	"github.com/llxisdsh/spinx/internal/opt"
)

// Mutex is a spin-based exclusive lock owning a payload of type T.
//
// It is intended for environments without a scheduler-aware blocking
// primitive: waiting is pure busy-polling on the lock word, never parking on
// the runtime wait queue.
//
// Properties:
//   - Zero-value usable (unlocked, zero T). Use NewMutex to seed the payload.
//   - Guard-based access: the payload is reachable only through a guard
//     returned by a successful acquisition.
//   - No poisoning: a panic inside the critical section releases the lock via
//     the deferred Unlock and leaves whatever half-mutated payload it left.
//     This is a deliberate simplicity/perf trade-off versus poisoning
//     mutexes; callers that need rollback must build it themselves.
//   - Not re-entrant: a second Lock on the same instance from the holder
//     spins forever.
//
// Size: 4 bytes of state (plus padding) + the payload.
type Mutex[T any] struct {
	_     noCopy
	state atomic.Uint32
	_     opt.StatePad32_
	data  T
}

// MutexGuard is proof of a live Mutex acquisition.
// Exactly one guard exists per locked Mutex; dropping it (Unlock) is the only
// release path.
type MutexGuard[T any] struct {
	m *Mutex[T]
}

// NewMutex returns an unlocked Mutex owning data.
func NewMutex[T any](data T) *Mutex[T] {
	return &Mutex[T]{data: data}
}

// Lock acquires the lock, spinning with backoff until the 0→1 transition
// succeeds. There is no timeout; livelock under pathological scheduling is
// possible and not treated as an error.
func (m *Mutex[T]) Lock() MutexGuard[T] {
	if m.state.CompareAndSwap(0, 1) {
		return MutexGuard[T]{m: m}
	}
	return m.lockSlow()
}

func (m *Mutex[T]) lockSlow() MutexGuard[T] {
	var spins int
	for {
		// Read-only spin while visibly held keeps the line shared
		// instead of bouncing it with failed CAS attempts.
		for m.IsLocked() {
			delay(&spins)
		}
		if m.state.CompareAndSwap(0, 1) {
			return MutexGuard[T]{m: m}
		}
	}
}

// TryLock attempts a single acquisition without spinning.
func (m *Mutex[T]) TryLock() (MutexGuard[T], bool) {
	if m.state.CompareAndSwap(0, 1) {
		return MutexGuard[T]{m: m}, true
	}
	return MutexGuard[T]{}, false
}

// IsLocked reports a snapshot of the lock word. The result may be stale
// immediately after return; it is a contention hint, never a correctness
// check.
//
//go:nosplit
func (m *Mutex[T]) IsLocked() bool {
	return m.state.Load() != 0
}

// Value returns the payload. Valid only between the acquisition that produced
// the guard and its Unlock.
//
//go:nosplit
func (g MutexGuard[T]) Value() *T {
	return &g.m.data
}

// Unlock releases the lock unconditionally (release-ordered store), making
// all critical-section writes visible to the next acquirer. Call it exactly
// once per guard, typically via defer so a panicking critical section still
// releases.
func (g *MutexGuard[T]) Unlock() {
	m := g.m
	g.m = nil // a second Unlock faults instead of corrupting the state
	m.state.Store(0)
}
