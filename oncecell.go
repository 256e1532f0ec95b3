package spinx

// OnceCell is a write-once, read-many storage cell: a Once gating an inline
// slot for one value of type T.
//
// The slot holds a valid T if and only if the embedded gate has reached
// Complete, and is never written again afterwards. The cell performs no heap
// allocation of its own; its lifetime is that of the enclosing scope or
// struct, which makes it a natural field of process-wide statics.
//
// Zero-value usable (empty).
type OnceCell[T any] struct {
	_    noCopy
	once Once
	data T
}

// Get returns a pointer to the stored value iff the cell is initialized.
// It never blocks, not even while an initializer is running.
func (c *OnceCell[T]) Get() (*T, bool) {
	if c.once.Completed() {
		return &c.data, true
	}
	return nil, false
}

// GetOrInit returns the stored value, initializing it with f() if the cell
// is empty.
//
// f is evaluated exactly once across all callers; the winner writes the slot
// before the gate publishes Complete, so every caller observes the same fully
// constructed value. If f panics, the cell stays uninitialized forever and
// every future GetOrInit or Set on this instance panics (propagated Once
// poisoning).
func (c *OnceCell[T]) GetOrInit(f func() T) *T {
	if v, ok := c.Get(); ok {
		return v
	}
	return c.initSlow(f)
}

func (c *OnceCell[T]) initSlow(f func() T) *T {
	c.once.Do(func() {
		c.data = f()
	})
	return &c.data
}

// Set attempts to initialize the cell with a fixed value. It reports whether
// v was stored; on a lost race the returned pointer is the previously stored
// value and v is discarded (the caller still holds its copy, the Go shape of
// handing the rejected value back).
func (c *OnceCell[T]) Set(v T) (*T, bool) {
	set := false
	p := c.GetOrInit(func() T {
		set = true
		return v
	})
	return p, set
}
