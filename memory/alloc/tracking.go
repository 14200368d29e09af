package alloc

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// TrackingStats is a snapshot of a Tracking system's counters.
type TrackingStats struct {
	Mallocs    int64 `json:"mallocs"`
	Frees      int64 `json:"frees"`
	Failures   int64 `json:"failures"`
	LiveBlocks int64 `json:"live_blocks"`
	LiveBytes  int64 `json:"live_bytes"`
	PeakBytes  int64 `json:"peak_bytes"`
}

// Leaked reports whether any block is still outstanding.
func (s TrackingStats) Leaked() bool {
	return s.LiveBlocks != 0
}

// Tracking wraps a System and counts the calls made to it. It is the harness
// used to prove that every block the header strategy obtains is released.
type Tracking struct {
	sys System

	mallocs   atomic.Int64
	frees     atomic.Int64
	failures  atomic.Int64
	liveBytes atomic.Int64
	peakBytes atomic.Int64

	mu    sync.Mutex
	sizes map[uintptr]uintptr
}

// NewTracking wraps sys. A nil sys wraps a new HeapSystem.
func NewTracking(sys System) *Tracking {
	if sys == nil {
		sys = NewHeapSystem()
	}
	return &Tracking{sys: sys, sizes: make(map[uintptr]uintptr)}
}

// Malloc forwards to the wrapped System and records the result.
func (t *Tracking) Malloc(size uintptr) unsafe.Pointer {
	p := t.sys.Malloc(size)
	if p == nil {
		t.failures.Add(1)
		return nil
	}
	t.mallocs.Add(1)

	t.mu.Lock()
	t.sizes[uintptr(p)] = size
	t.mu.Unlock()

	live := t.liveBytes.Add(int64(size))
	for {
		peak := t.peakBytes.Load()
		if live <= peak || t.peakBytes.CompareAndSwap(peak, live) {
			break
		}
	}
	return p
}

// Free forwards to the wrapped System and records the release.
func (t *Tracking) Free(p unsafe.Pointer) {
	t.mu.Lock()
	size, ok := t.sizes[uintptr(p)]
	delete(t.sizes, uintptr(p))
	t.mu.Unlock()

	if ok {
		t.liveBytes.Add(-int64(size))
	}
	t.frees.Add(1)
	t.sys.Free(p)
}

// Stats returns a snapshot of the counters.
func (t *Tracking) Stats() TrackingStats {
	t.mu.Lock()
	live := int64(len(t.sizes))
	t.mu.Unlock()
	return TrackingStats{
		Mallocs:    t.mallocs.Load(),
		Frees:      t.frees.Load(),
		Failures:   t.failures.Load(),
		LiveBlocks: live,
		LiveBytes:  t.liveBytes.Load(),
		PeakBytes:  t.peakBytes.Load(),
	}
}

// Owns reports whether p is a live block obtained through this Tracking.
func (t *Tracking) Owns(p unsafe.Pointer) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.sizes[uintptr(p)]
	return ok
}
