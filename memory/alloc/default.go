package alloc

import (
	"sync"
	"unsafe"
)

var defaultAllocator = sync.OnceValue(func() *Allocator {
	a, err := New(Config{})
	if err != nil {
		// StrategyAuto always resolves to some strategy.
		panic(err)
	}
	return a
})

// Default returns the process-wide allocator. It is built on first use with
// StrategyAuto and never changes afterwards.
func Default() *Allocator {
	return defaultAllocator()
}

// Malloc allocates from the default allocator.
func Malloc(size, align uintptr) (unsafe.Pointer, error) {
	return Default().Malloc(size, align)
}

// Realloc resizes a block owned by the default allocator.
func Realloc(p unsafe.Pointer, size, align uintptr) (unsafe.Pointer, error) {
	return Default().Realloc(p, size, align)
}

// Free releases a block owned by the default allocator.
func Free(p unsafe.Pointer) {
	Default().Free(p)
}
