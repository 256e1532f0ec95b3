//go:build spinx_enable_padding

package opt

// StatePad32_ with padding forced on via the spinx_enable_padding tag.
type StatePad32_ = [(CacheLineSize_ - 4%CacheLineSize_) % CacheLineSize_]byte

// StatePad64_ with padding forced on via the spinx_enable_padding tag.
type StatePad64_ = [(CacheLineSize_ - 8%CacheLineSize_) % CacheLineSize_]byte
