package alloc

import "github.com/joshuapare/memkit/memory/align"

const (
	// MinAlignment is the natural alignment for requests smaller than 16 bytes.
	MinAlignment = 8

	// LargeAlignment is the natural alignment for requests of 16 bytes or more.
	LargeAlignment = 16
)

// EffectiveAlignment returns the alignment a request of size bytes actually
// receives: max(requested, natural), where natural is LargeAlignment for sizes
// of at least 16 bytes and MinAlignment otherwise.
func EffectiveAlignment(size, requested uintptr) uintptr {
	natural := uintptr(MinAlignment)
	if size >= LargeAlignment {
		natural = LargeAlignment
	}
	return max(requested, natural)
}

// ValidAlignment reports whether a requested alignment is acceptable.
// Zero means "natural alignment" and is always valid.
func ValidAlignment(requested uintptr) bool {
	return requested == 0 || align.IsPowerOfTwo(requested)
}

// QuantizeSize returns the number of usable bytes a request of size bytes
// occupies once rounded to allocator granularity.
//
// Neither strategy uses size classes, so this is the identity. Callers should
// still use it to size containers: if size classes are introduced it will
// return the true usable size, always >= size.
func QuantizeSize(size, _ uintptr) uintptr {
	return size
}
