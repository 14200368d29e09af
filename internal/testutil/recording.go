// Package testutil holds test doubles shared by memkit's package tests.
package testutil

import (
	"sync"
	"unsafe"
)

// MallocCall records one System.Malloc call.
type MallocCall struct {
	Size     uintptr
	Returned unsafe.Pointer
}

// RecordingSystem is a mock system allocator. It records every Malloc and Free
// call, can be told to fail upcoming allocations, and keeps blocks pinned until
// they are freed.
type RecordingSystem struct {
	mu       sync.Mutex
	mallocs  []MallocCall
	frees    []unsafe.Pointer
	failNext int
	blocks   map[uintptr][]byte
}

// NewRecordingSystem returns an empty RecordingSystem.
func NewRecordingSystem() *RecordingSystem {
	return &RecordingSystem{blocks: make(map[uintptr][]byte)}
}

// FailNext makes the next n Malloc calls return nil.
func (r *RecordingSystem) FailNext(n int) {
	r.mu.Lock()
	r.failNext = n
	r.mu.Unlock()
}

// Malloc returns size bytes filled with 0xCD so tests notice uninitialised reads.
func (r *RecordingSystem) Malloc(size uintptr) unsafe.Pointer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failNext > 0 {
		r.failNext--
		r.mallocs = append(r.mallocs, MallocCall{Size: size})
		return nil
	}
	b := make([]byte, size)
	for i := range b {
		b[i] = 0xCD
	}
	p := unsafe.Pointer(unsafe.SliceData(b))
	r.blocks[uintptr(p)] = b
	r.mallocs = append(r.mallocs, MallocCall{Size: size, Returned: p})
	return p
}

// Free records p and unpins its block.
func (r *RecordingSystem) Free(p unsafe.Pointer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frees = append(r.frees, p)
	delete(r.blocks, uintptr(p))
}

// Mallocs returns a copy of the recorded Malloc calls.
func (r *RecordingSystem) Mallocs() []MallocCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MallocCall(nil), r.mallocs...)
}

// Frees returns a copy of the pointers passed to Free, in call order.
func (r *RecordingSystem) Frees() []unsafe.Pointer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]unsafe.Pointer(nil), r.frees...)
}

// Live returns the number of blocks not yet freed.
func (r *RecordingSystem) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blocks)
}

// Contains reports whether [p, p+n) lies inside a live block.
func (r *RecordingSystem) Contains(p unsafe.Pointer, n uintptr) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	addr := uintptr(p)
	for base, b := range r.blocks {
		if addr >= base && addr+n <= base+uintptr(len(b)) {
			return true
		}
	}
	return false
}
