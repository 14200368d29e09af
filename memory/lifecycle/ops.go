package lifecycle

import (
	"fmt"
	"unsafe"
)

// Ops is the set of bulk element operations a container relies on.
type Ops[T any] interface {
	// DefaultConstructItems value-initialises every element of dst.
	DefaultConstructItems(dst []T)
	// DestructItems ends the lifetime of every element of dst.
	DestructItems(dst []T)
	// ConstructItems copy-constructs dst from src.
	ConstructItems(dst, src []T)
	// CopyAssignItems copy-assigns src onto the live elements of dst, front to back.
	CopyAssignItems(dst, src []T)
	// RelocateConstructItems moves src into dst and leaves src destructed.
	// The ranges may overlap.
	RelocateConstructItems(dst, src []T)
	// MoveConstructItems move-constructs dst from src without destructing src.
	MoveConstructItems(dst, src []T)
	// MoveAssignItems move-assigns src onto the live elements of dst.
	MoveAssignItems(dst, src []T)
	// CompareItems reports whether every pair a[i], b[i] is equal.
	// Empty ranges compare equal.
	CompareItems(a, b []T) bool
}

// source trims src to the length of dst. It panics when src is shorter,
// whatever its capacity.
func source[D, S any](dst []D, src []S) []S {
	if len(src) < len(dst) {
		panic(fmt.Sprintf("lifecycle: source has %d items, need %d", len(src), len(dst)))
	}
	return src[:len(dst)]
}

// relocateBackward reports whether dst starts inside src past its first
// element, in which case a front-to-back walk would overwrite unread sources.
func relocateBackward[T any](dst, src []T) bool {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return false
	}
	d := uintptr(unsafe.Pointer(unsafe.SliceData(dst)))
	s := uintptr(unsafe.Pointer(unsafe.SliceData(src)))
	return d > s && d < s+uintptr(len(src))*size
}

// sameStart reports whether dst and src begin at the same element.
func sameStart[T any](dst, src []T) bool {
	return unsafe.SliceData(dst) == unsafe.SliceData(src)
}
