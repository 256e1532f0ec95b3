package spinx

import (
	"sync"
	"testing"
)

func TestMutex_Basic(t *testing.T) {
	m := NewMutex(1)
	g := m.Lock()
	if *g.Value() != 1 {
		t.Fatalf("payload = %d, want 1", *g.Value())
	}
	*g.Value() = 2
	g.Unlock()

	g = m.Lock()
	if *g.Value() != 2 {
		t.Fatalf("payload = %d, want 2", *g.Value())
	}
	g.Unlock()
}

func TestMutex_ZeroValue(t *testing.T) {
	var m Mutex[int]
	g := m.Lock()
	*g.Value()++
	g.Unlock()

	g = m.Lock()
	if *g.Value() != 1 {
		t.Fatalf("payload = %d, want 1", *g.Value())
	}
	g.Unlock()
}

func TestMutex_Counter(t *testing.T) {
	var m Mutex[int]
	const loops = 100
	const workers = 2

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range loops {
				g := m.Lock()
				*g.Value()++
				g.Unlock()
			}
		}()
	}
	wg.Wait()

	g := m.Lock()
	defer g.Unlock()
	if *g.Value() != workers*loops {
		t.Fatalf("counter = %d, want %d", *g.Value(), workers*loops)
	}
}

func TestMutex_MutualExclusion(t *testing.T) {
	var m Mutex[struct{}]
	var inside int32

	const loops = 1000
	workers := 4

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range loops {
				g := m.Lock()
				inside++
				if inside != 1 {
					t.Errorf("%d holders inside the critical section", inside)
					g.Unlock()
					return
				}
				inside--
				g.Unlock()
			}
		}()
	}
	wg.Wait()
}

func TestMutex_TryLock(t *testing.T) {
	var m Mutex[int]

	g, ok := m.TryLock()
	if !ok {
		t.Fatal("TryLock failed on an unlocked mutex")
	}
	if _, ok := m.TryLock(); ok {
		t.Fatal("TryLock succeeded while locked")
	}
	if !m.IsLocked() {
		t.Fatal("IsLocked = false while a guard is live")
	}
	g.Unlock()

	if m.IsLocked() {
		t.Fatal("IsLocked = true after Unlock")
	}
	if _, ok := m.TryLock(); !ok {
		t.Fatal("TryLock failed after Unlock")
	}
}

// A panic in the critical section must release the lock and must NOT poison
// it: the next locker sees whatever partial state the panicking section left.
func TestMutex_PanicReleasesWithoutPoison(t *testing.T) {
	var m Mutex[int]

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic to propagate")
			}
		}()
		g := m.Lock()
		defer g.Unlock()
		*g.Value() = 42
		panic("boom")
	}()

	g, ok := m.TryLock()
	if !ok {
		t.Fatal("lock still held after panicking critical section")
	}
	defer g.Unlock()
	if *g.Value() != 42 {
		t.Fatalf("payload = %d, want the partial mutation 42", *g.Value())
	}
}
