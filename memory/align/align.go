// Package align provides alignment arithmetic shared by the allocator and its callers.
//
// All helpers assume the alignment is a power of two; use IsPowerOfTwo to
// validate values that come from outside.
package align

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// IsPowerOfTwo reports whether v is a positive power of two.
//
// Example:
//
//	IsPowerOfTwo(0)  = false
//	IsPowerOfTwo(1)  = true
//	IsPowerOfTwo(48) = false
func IsPowerOfTwo[T constraints.Integer](v T) bool {
	return v > 0 && v&(v-1) == 0
}

// Up returns the next value greater than or equal to v that is divisible by a.
//
// Example:
//
//	Up(1, 8)  = 8
//	Up(8, 8)  = 8
//	Up(9, 16) = 16
func Up[T constraints.Integer](v, a T) T {
	return (v + a - 1) & ^(a - 1)
}

// IsAligned reports whether v is divisible by a.
func IsAligned[T constraints.Integer](v, a T) bool {
	return v&(a-1) == 0
}

// Pointer reports whether p is aligned to a bytes.
func Pointer(p unsafe.Pointer, a uintptr) bool {
	return IsAligned(uintptr(p), a)
}

// Padding returns the number of bytes needed to move v up to a multiple of a.
func Padding[T constraints.Integer](v, a T) T {
	return Up(v, a) - v
}
