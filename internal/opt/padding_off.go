//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !spinx_disable_padding && !spinx_enable_padding

package opt

// StatePad32_ collapses to nothing on architectures where state/payload
// false sharing is cheap enough not to pay a cache line per lock for.
type StatePad32_ = [0]byte

// StatePad64_ is the 8-byte-state counterpart of StatePad32_.
type StatePad64_ = [0]byte
