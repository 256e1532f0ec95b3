package spinx

import (
	"sync/atomic"
)

// Once is a one-time execution gate with poison propagation.
//
// Unlike sync.Once it never parks: losers of the Incomplete→Running race
// spin-poll with backoff until the winner finishes. And unlike sync.Once a
// panicking function does not leave the gate re-runnable or silently
// "done" — it poisons the instance, and every later or concurrently waiting
// caller panics instead of treating the initialization as complete.
//
// State machine: Incomplete → Running → {Complete | Poisoned}; the last two
// are terminal.
//
// Zero-value usable. Size: 4 bytes.
type Once struct {
	_     noCopy
	state atomic.Uint32
}

const (
	onceIncomplete = iota // initial
	onceRunning           // one caller is executing f
	onceComplete          // f returned normally; terminal
	oncePoisoned          // f panicked; terminal
)

// Completed reports whether a Do call has finished successfully.
// It never becomes true on a poisoned instance.
//
//go:nosplit
func (o *Once) Completed() bool {
	return o.state.Load() == onceComplete
}

// Do executes f exactly once per instance across all callers.
//
// If the gate is already Complete, Do returns without invoking f. The one
// caller that wins the Incomplete→Running transition runs f; everyone else
// spins until the outcome is published. If f panics, the state is set to
// Poisoned before the panic propagates, and every subsequent or waiting Do
// call panics.
func (o *Once) Do(f func()) {
	if !o.Completed() {
		o.doSlow(f)
	}
}

func (o *Once) doSlow(f func()) {
	var spins int
	for {
		if o.state.CompareAndSwap(onceIncomplete, onceRunning) {
			o.run(f)
			return
		}
		switch o.state.Load() {
		case onceRunning:
			delay(&spins)
		case onceComplete:
			return
		case oncePoisoned:
			panic("spinx: Once poisoned by a panicked function")
		default:
			// Incomplete again: the CAS lost to a load that has since
			// resolved; retry the claim.
		}
	}
}

func (o *Once) run(f func()) {
	// Scope-exit sentinel: unless f returns and disarms it, the unwind
	// publishes Poisoned so waiters fail loudly instead of spinning on a
	// Running state that will never resolve.
	status := uint32(oncePoisoned)
	defer func() {
		o.state.Store(status)
	}()
	f()
	status = onceComplete
}
