package lifecycle

import (
	"bytes"
	"unsafe"
)

// Trivial implements Ops with bulk memory operations. Construction is a
// zero-fill, every transfer is a single overlap-safe copy, destruction does
// nothing and comparison is a raw byte comparison.
//
// Byte comparison differs from == for types with padding or floating point
// fields (NaN, negative zero); use Managed for those.
type Trivial[T any] struct{}

var _ Ops[int] = Trivial[int]{}

func (Trivial[T]) DefaultConstructItems(dst []T) {
	clear(dst)
}

func (Trivial[T]) DestructItems([]T) {}

func (Trivial[T]) ConstructItems(dst, src []T) {
	copy(dst, source(dst, src))
}

func (Trivial[T]) CopyAssignItems(dst, src []T) {
	copy(dst, source(dst, src))
}

// RelocateConstructItems is a single copy; copy has memmove semantics, so
// overlapping ranges inside one buffer are handled.
func (Trivial[T]) RelocateConstructItems(dst, src []T) {
	copy(dst, source(dst, src))
}

func (Trivial[T]) MoveConstructItems(dst, src []T) {
	copy(dst, source(dst, src))
}

func (Trivial[T]) MoveAssignItems(dst, src []T) {
	copy(dst, source(dst, src))
}

func (Trivial[T]) CompareItems(a, b []T) bool {
	if len(a) == 0 {
		return true
	}
	return bytes.Equal(rawBytes(a), rawBytes(source(a, b)))
}

func rawBytes[T any](s []T) []byte {
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), uintptr(len(s))*unsafe.Sizeof(zero))
}
