//go:build spinx_cachelinesize_128

package opt

// CacheLineSize_ is forced to 128 bytes via the spinx_cachelinesize_128 tag.
const CacheLineSize_ = 128
