package spinx

import (
	"sync/atomic"
)

// LazyCell defers computing a value until first access: an OnceCell plus a
// one-shot initializer consumed on the first forced evaluation.
//
// The initializer runs at most once per instance even when many threads force
// concurrently; all of them observe the single cached result. If the
// initializer panics, the instance is poisoned: the function is gone (it is
// removed from its slot before running, so it can never execute twice) and
// every later access panics.
type LazyCell[T any] struct {
	cell OnceCell[T]
	init atomic.Pointer[func() T]
}

// NewLazyCell returns a LazyCell that will compute its value with f on the
// first Value call. f is not invoked here.
func NewLazyCell[T any](f func() T) *LazyCell[T] {
	l := &LazyCell[T]{}
	l.init.Store(&f)
	return l
}

// Value forces evaluation: it returns the cached value, computing it on first
// access.
func (l *LazyCell[T]) Value() *T {
	if v, ok := l.cell.Get(); ok {
		return v
	}
	return l.force()
}

func (l *LazyCell[T]) force() *T {
	return l.cell.GetOrInit(func() T {
		fp := l.init.Swap(nil)
		if fp == nil {
			// Only reachable if a previous evaluation consumed the
			// initializer and then failed before the gate resolved.
			panic("spinx: LazyCell previously poisoned")
		}
		return (*fp)()
	})
}

// Get inspects the cell without forcing evaluation.
func (l *LazyCell[T]) Get() (*T, bool) {
	return l.cell.Get()
}
