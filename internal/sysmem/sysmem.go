// Package sysmem provides platform-specific sources of raw memory: anonymous
// page mappings and, where the platform has one, a native aligned allocation API.
package sysmem

import (
	"errors"
	"unsafe"
)

// ErrZeroLength is returned when a mapping of zero bytes is requested.
var ErrZeroLength = errors.New("sysmem: zero-length mapping")

// Aligned is the platform's native aligned allocation primitive set.
//
// AlignedMalloc and AlignedRealloc return nil on failure. AlignedFree accepts nil.
type Aligned interface {
	AlignedMalloc(size, align uintptr) unsafe.Pointer
	AlignedRealloc(p unsafe.Pointer, size, align uintptr) unsafe.Pointer
	AlignedFree(p unsafe.Pointer)
}

// NativeAligned returns the platform aligned API, or nil when the platform has none.
func NativeAligned() Aligned {
	return nativeAligned()
}
