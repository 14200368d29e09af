package testutil

import (
	"sync"
	"unsafe"
)

// FakeAligned stands in for a platform aligned allocation API on platforms
// that lack one. It over-allocates Go heap slices and shifts them into place,
// the way arrow's GoAllocator does.
type FakeAligned struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte  // aligned address -> aligned view
	aligns map[uintptr]uintptr // aligned address -> alignment it was made with

	Mallocs  int
	Reallocs int
	Frees    int
	// AlignChanges counts reallocs whose alignment differs from the block's,
	// which ucrt _aligned_realloc treats as an error.
	AlignChanges int
}

// NewFakeAligned returns an empty FakeAligned.
func NewFakeAligned() *FakeAligned {
	return &FakeAligned{blocks: make(map[uintptr][]byte), aligns: make(map[uintptr]uintptr)}
}

// AlignedMalloc returns size bytes aligned to align.
func (f *FakeAligned) AlignedMalloc(size, align uintptr) unsafe.Pointer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Mallocs++
	return f.allocLocked(size, align)
}

func (f *FakeAligned) allocLocked(size, align uintptr) unsafe.Pointer {
	raw := make([]byte, size+align)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	shift := (align - addr%align) % align
	view := raw[shift : shift+size : shift+size]
	p := unsafe.Pointer(unsafe.SliceData(view))
	f.blocks[uintptr(p)] = view
	f.aligns[uintptr(p)] = align
	return p
}

// AlignedRealloc moves the block at p into a new block of size bytes.
func (f *FakeAligned) AlignedRealloc(p unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reallocs++
	if f.aligns[uintptr(p)] != align {
		f.AlignChanges++
	}
	old := f.blocks[uintptr(p)]
	np := f.allocLocked(size, align)
	copy(f.blocks[uintptr(np)], old)
	delete(f.blocks, uintptr(p))
	delete(f.aligns, uintptr(p))
	return np
}

// AlignedFree releases the block at p.
func (f *FakeAligned) AlignedFree(p unsafe.Pointer) {
	if p == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Frees++
	delete(f.blocks, uintptr(p))
	delete(f.aligns, uintptr(p))
}

// Live returns the number of blocks not yet freed.
func (f *FakeAligned) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.blocks)
}
