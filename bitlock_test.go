package spinx

import (
	"sync"
	"testing"
)

func TestBitLock_Uint64(t *testing.T) {
	var val uint64
	const mask = 1 << 63 // Use highest bit as lock

	var count int
	var wg sync.WaitGroup
	const N = 1000

	wg.Add(N)
	for range N {
		go func() {
			defer wg.Done()
			BitLock(&val, uint64(mask))
			count++
			BitUnlock(&val, uint64(mask))
		}()
	}
	wg.Wait()

	if count != N {
		t.Errorf("expected count %d, got %d", N, count)
	}
}

func TestBitLock_Uint32(t *testing.T) {
	var val uint32
	const mask = 1 << 31

	var count int
	var wg sync.WaitGroup
	const N = 1000

	wg.Add(N)
	for range N {
		go func() {
			defer wg.Done()
			BitLock(&val, uint32(mask))
			count++
			BitUnlock(&val, uint32(mask))
		}()
	}
	wg.Wait()

	if count != N {
		t.Errorf("expected count %d, got %d", N, count)
	}
}

func TestBitLock_TryAndOtherBits(t *testing.T) {
	val := uint32(0b1010)
	const mask = uint32(1)

	if !TryBitLock(&val, mask) {
		t.Fatal("TryBitLock failed on a clear bit")
	}
	if TryBitLock(&val, mask) {
		t.Fatal("TryBitLock succeeded on a held bit")
	}
	if val != 0b1011 {
		t.Fatalf("other bits disturbed: %b", val)
	}

	BitUnlock(&val, mask)
	if val != 0b1010 {
		t.Fatalf("unlock disturbed other bits: %b", val)
	}
}

func TestBitLock_UnlockStore(t *testing.T) {
	var val uint64
	const mask = uint64(1 << 63)

	BitLock(&val, mask)
	BitUnlockStore(&val, mask, mask|0xBEEF)
	if val != 0xBEEF {
		t.Fatalf("val = %#x, want mask cleared and payload stored", val)
	}
	if !TryBitLock(&val, mask) {
		t.Fatal("bit still held after BitUnlockStore")
	}
}

func TestBitLock_Uintptr(t *testing.T) {
	var val uintptr
	const mask = uintptr(1)

	BitLock(&val, mask)
	if TryBitLock(&val, mask) {
		t.Fatal("TryBitLock succeeded on a held bit")
	}
	BitUnlock(&val, mask)
	if val != 0 {
		t.Fatalf("val = %d after unlock, want 0", val)
	}
}
