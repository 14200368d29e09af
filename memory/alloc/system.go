package alloc

import (
	"math"
	"os"
	"sync"
	"unsafe"

	"github.com/joshuapare/memkit/internal/sysmem"
	"github.com/joshuapare/memkit/memory/align"
)

// HeapSystem allocates blocks from the Go heap and pins them in a table until
// Free is called, so the garbage collector never reclaims a live block.
type HeapSystem struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte
}

// NewHeapSystem returns an empty HeapSystem.
func NewHeapSystem() *HeapSystem {
	return &HeapSystem{blocks: make(map[uintptr][]byte)}
}

// Malloc returns size zeroed bytes, or nil when size is zero or too large.
func (h *HeapSystem) Malloc(size uintptr) unsafe.Pointer {
	if size == 0 || size > math.MaxInt {
		return nil
	}
	b := make([]byte, size)
	p := unsafe.Pointer(unsafe.SliceData(b))

	h.mu.Lock()
	h.blocks[uintptr(p)] = b
	h.mu.Unlock()
	return p
}

// Free unpins the block at p.
func (h *HeapSystem) Free(p unsafe.Pointer) {
	h.mu.Lock()
	delete(h.blocks, uintptr(p))
	h.mu.Unlock()
}

// Live returns the number of blocks not yet freed.
func (h *HeapSystem) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}

// PageSystem allocates each block as its own anonymous page mapping. Blocks
// live outside the Go heap (where the platform supports it) and are rounded up
// to whole pages.
type PageSystem struct {
	mu       sync.Mutex
	mappings map[uintptr][]byte
}

// NewPageSystem returns an empty PageSystem.
func NewPageSystem() *PageSystem {
	return &PageSystem{mappings: make(map[uintptr][]byte)}
}

// Malloc maps size bytes, or returns nil when the mapping fails.
func (s *PageSystem) Malloc(size uintptr) unsafe.Pointer {
	page := uintptr(os.Getpagesize())
	if size == 0 || size > math.MaxInt-page {
		return nil
	}
	data, err := sysmem.Map(int(align.Up(size, page)))
	if err != nil {
		return nil
	}
	p := unsafe.Pointer(unsafe.SliceData(data))

	s.mu.Lock()
	s.mappings[uintptr(p)] = data
	s.mu.Unlock()
	return p
}

// Free unmaps the block at p. Pointers this PageSystem did not map are ignored.
func (s *PageSystem) Free(p unsafe.Pointer) {
	s.mu.Lock()
	data, ok := s.mappings[uintptr(p)]
	delete(s.mappings, uintptr(p))
	s.mu.Unlock()
	if ok {
		_ = sysmem.Unmap(data)
	}
}

// OffHeap reports whether this platform's pages live outside the Go heap.
func (s *PageSystem) OffHeap() bool {
	return sysmem.OffHeap
}
