// Package buf contains overflow-safe size arithmetic and raw byte views used by
// the allocator and its tooling.
package buf

import (
	"fmt"
	"math"
	"unsafe"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow uintptr.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a > math.MaxUint-b {
		return 0, false
	}
	return a + b, true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow uintptr.
// This is essential for count * elementSize calculations.
func MulOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint/b {
		return 0, false
	}
	return a * b, true
}

// SumOverflowSafe adds all terms, returning ok = false on the first overflow.
func SumOverflowSafe(terms ...uintptr) (uintptr, bool) {
	var total uintptr
	for _, t := range terms {
		var ok bool
		if total, ok = AddOverflowSafe(total, t); !ok {
			return 0, false
		}
	}
	return total, true
}

// SpanBytes returns count*elemSize as a byte count, or an error describing
// the overflow or negative count.
//
//	n, err := buf.SpanBytes(count, unsafe.Sizeof(v))
//	if err != nil {
//	    return fmt.Errorf("slice: %w", err)
//	}
func SpanBytes(count int, elemSize uintptr) (uintptr, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	total, ok := MulOverflowSafe(uintptr(count), elemSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	return total, nil
}

// View returns the n bytes starting at p as a slice. A nil p or zero n yields nil.
func View(p unsafe.Pointer, n uintptr) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}
