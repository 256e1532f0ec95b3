//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !spinx_disable_padding && !spinx_enable_padding

package opt

// StatePad32_ separates a 4-byte atomic lock word from the payload that
// follows it, so spinning waiters hammering the word do not invalidate the
// cache line holding the data the holder is working on.
//
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): Hardware optimizations often make padding less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): Smaller cache lines/memory constraints
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
type StatePad32_ = [(CacheLineSize_ - 4%CacheLineSize_) % CacheLineSize_]byte

// StatePad64_ is the 8-byte-state counterpart of StatePad32_.
type StatePad64_ = [(CacheLineSize_ - 8%CacheLineSize_) % CacheLineSize_]byte
