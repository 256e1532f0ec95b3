package spinx

import (
	"sync/atomic"
	"unsafe"
)

// Bit-locks borrow a single bit of an existing atomic word as a spin lock.
// This allows embedding a lock into a metadata field that already exists,
// costing zero extra bytes and avoiding false sharing with a separate lock
// word. The remaining bits of the word stay available to the holder.

// BitLock acquires the bit-lock designated by mask on addr, spinning with
// backoff until the bit can be set. The lock is considered held while
// (value & mask) != 0.
func BitLock[T ~uint32 | ~uint64 | ~uintptr](addr *T, mask T) {
	cur := loadWord(addr)
	if casWord(addr, cur&^mask, cur|mask) {
		return
	}
	bitLockSlow(addr, mask)
}

func bitLockSlow[T ~uint32 | ~uint64 | ~uintptr](addr *T, mask T) {
	var spins int
	for !TryBitLock(addr, mask) {
		delay(&spins)
	}
}

// TryBitLock attempts to set the lock bit once (retrying only pure CAS races
// on the other bits). It returns false if the bit is already set.
func TryBitLock[T ~uint32 | ~uint64 | ~uintptr](addr *T, mask T) bool {
	for {
		cur := loadWord(addr)
		if cur&mask != 0 {
			return false
		}
		if casWord(addr, cur, cur|mask) {
			return true
		}
	}
}

// BitUnlock releases the bit-lock by clearing mask, preserving the other
// bits of the word.
//
//go:nosplit
func BitUnlock[T ~uint32 | ~uint64 | ~uintptr](addr *T, mask T) {
	storeWord(addr, loadWord(addr)&^mask)
}

// BitUnlockStore releases the bit-lock and publishes value into the other
// bits in the same store.
//
//go:nosplit
func BitUnlockStore[T ~uint32 | ~uint64 | ~uintptr](addr *T, mask T, value T) {
	storeWord(addr, value&^mask)
}

// loadWord/storeWord/casWord dispatch on the word size so the bit-lock API
// can stay generic over uint32, uint64 and uintptr.

//go:nosplit
func loadWord[T ~uint32 | ~uint64 | ~uintptr](addr *T) T {
	if unsafe.Sizeof(T(0)) == 4 {
		return T(atomic.LoadUint32((*uint32)(unsafe.Pointer(addr))))
	}
	return T(atomic.LoadUint64((*uint64)(unsafe.Pointer(addr))))
}

//go:nosplit
func storeWord[T ~uint32 | ~uint64 | ~uintptr](addr *T, val T) {
	if unsafe.Sizeof(T(0)) == 4 {
		atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), uint32(val))
	} else {
		atomic.StoreUint64((*uint64)(unsafe.Pointer(addr)), uint64(val))
	}
}

//go:nosplit
func casWord[T ~uint32 | ~uint64 | ~uintptr](addr *T, old, new T) bool {
	if unsafe.Sizeof(T(0)) == 4 {
		return atomic.CompareAndSwapUint32(
			(*uint32)(unsafe.Pointer(addr)), uint32(old), uint32(new))
	}
	return atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(addr)), uint64(old), uint64(new))
}
