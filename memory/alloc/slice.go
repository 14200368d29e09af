package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/buf"
)

// MakeSlice allocates room for n values of T from a and returns it as a slice
// of length n. T must not contain Go pointers: the garbage collector does not
// scan allocator memory.
//
// Header-strategy memory over a HeapSystem or PageSystem starts zeroed; the
// native strategy and other System implementations make no such promise, so
// initialise elements before reading them (lifecycle.Trivial does this in
// DefaultConstructItems).
//
// n == 0 or a zero-sized T returns a nil slice.
func MakeSlice[T any](a *Allocator, n int) ([]T, error) {
	var zero T
	size, err := buf.SpanBytes(n, unsafe.Sizeof(zero))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	p, err := a.Malloc(size, unsafe.Alignof(zero))
	if err != nil || p == nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

// GrowSlice resizes s, which must have come from MakeSlice or GrowSlice on the
// same allocator with its full original length, to n elements. The first
// min(len(s), n) elements carry over; any new tail is not initialised.
//
// On failure s remains valid. Resizing to zero frees s and returns nil.
func GrowSlice[T any](a *Allocator, s []T, n int) ([]T, error) {
	var zero T
	size, err := buf.SpanBytes(n, unsafe.Sizeof(zero))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	p, err := a.Realloc(unsafe.Pointer(unsafe.SliceData(s)), size, unsafe.Alignof(zero))
	if err != nil || p == nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

// FreeSlice releases a slice obtained from MakeSlice or GrowSlice.
func FreeSlice[T any](a *Allocator, s []T) {
	a.Free(unsafe.Pointer(unsafe.SliceData(s)))
}

// Bytes returns the n bytes at p as a byte slice.
func Bytes(p unsafe.Pointer, n uintptr) []byte {
	return buf.View(p, n)
}
