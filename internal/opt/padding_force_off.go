//go:build spinx_disable_padding

package opt

// StatePad32_ with padding forced off via the spinx_disable_padding tag.
type StatePad32_ = [0]byte

// StatePad64_ with padding forced off via the spinx_disable_padding tag.
type StatePad64_ = [0]byte
