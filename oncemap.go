package spinx

import (
	"github.com/llxisdsh/pb"
)

// OnceMap is a keyed collection of write-once cells: each key is initialized
// at most once, concurrent initializers for the same key are deduplicated,
// and every caller observes the single stored value.
//
// It composes a lock-free map with OnceCell, so the per-key exactly-once and
// poison semantics are exactly those of OnceCell: if an initializer for a key
// panics, that key is poisoned until Forget removes it.
type OnceMap[K comparable, V any] struct {
	m pb.MapOf[K, *OnceCell[V]]
}

// Get returns the value stored under key iff that key has completed
// initialization. It never blocks, not even while an initializer for key is
// running.
func (g *OnceMap[K, V]) Get(key K) (*V, bool) {
	var c *OnceCell[V]
	_, _ = g.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[K, *OnceCell[V]]) (*pb.EntryOf[K, *OnceCell[V]], *OnceCell[V], bool) {
			if l != nil {
				c = l.Value
				return l, c, true
			}
			return nil, nil, false
		},
	)
	if c == nil {
		return nil, false
	}
	return c.Get()
}

// GetOrInit returns the value stored under key, initializing it with f() if
// the key is empty. f runs at most once per key across all callers; losers
// wait on the winning cell and receive the same pointer.
func (g *OnceMap[K, V]) GetOrInit(key K, f func() V) *V {
	var c *OnceCell[V]
	_, _ = g.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[K, *OnceCell[V]]) (*pb.EntryOf[K, *OnceCell[V]], *OnceCell[V], bool) {
			if l != nil {
				c = l.Value
				return l, c, true
			}
			c = &OnceCell[V]{}
			return &pb.EntryOf[K, *OnceCell[V]]{Value: c}, c, false
		},
	)
	return c.GetOrInit(f)
}

// Set attempts to initialize key with a fixed value. It reports whether v was
// stored; on a lost race the returned pointer is the previously stored value.
func (g *OnceMap[K, V]) Set(key K, v V) (*V, bool) {
	set := false
	p := g.GetOrInit(key, func() V {
		set = true
		return v
	})
	return p, set
}

// Forget drops the cell for key, including a poisoned one. A later
// GetOrInit for the key starts over with a fresh cell.
func (g *OnceMap[K, V]) Forget(key K) {
	g.m.Delete(key)
}
