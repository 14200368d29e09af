package alloc

import (
	"log/slog"
	"unsafe"

	"github.com/joshuapare/memkit/internal/buf"
)

// strategy produces aligned blocks. Callers pass an already-effective,
// validated alignment. Failure is a nil pointer.
type strategy interface {
	alloc(size, align uintptr) unsafe.Pointer
	realloc(p unsafe.Pointer, size, align uintptr) unsafe.Pointer
	free(p unsafe.Pointer)
	kind() Strategy
}

// nativeStrategy delegates to a platform aligned allocation API.
//
// Every block is requested at LargeAlignment or more. Aligned realloc APIs
// (ucrt _aligned_realloc) reject a change of alignment, and the effective
// alignment of a block that grows past LargeAlignment bytes would otherwise
// move from MinAlignment to LargeAlignment.
type nativeStrategy struct {
	api AlignedSystem
}

func nativeAlignment(align uintptr) uintptr {
	return max(align, LargeAlignment)
}

func (s *nativeStrategy) alloc(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	return s.api.AlignedMalloc(size, nativeAlignment(align))
}

func (s *nativeStrategy) realloc(p unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	if p == nil {
		return s.alloc(size, align)
	}
	if size == 0 {
		s.free(p)
		return nil
	}
	return s.api.AlignedRealloc(p, size, nativeAlignment(align))
}

func (s *nativeStrategy) free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	s.api.AlignedFree(p)
}

func (s *nativeStrategy) kind() Strategy { return StrategyNative }

// headerStrategy builds aligned blocks on a plain System allocator by
// over-allocating and recording the raw pointer and size in a header.
type headerStrategy struct {
	sys System
	log *slog.Logger
}

func (s *headerStrategy) alloc(size, align uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}
	total, ok := buf.SumOverflowSafe(size, align, headerSize)
	if !ok {
		return nil
	}
	raw := s.sys.Malloc(total)
	if raw == nil {
		return nil
	}
	return place(raw, size, align)
}

// realloc always allocates a new block and copies, even when shrinking.
func (s *headerStrategy) realloc(p unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	if p == nil {
		return s.alloc(size, align)
	}
	if size == 0 {
		s.free(p)
		return nil
	}
	np := s.alloc(size, align)
	if np == nil {
		return nil
	}
	n := min(size, headerOf(p).size)
	copy(buf.View(np, n), buf.View(p, n))
	s.log.Debug("alloc: realloc copied block", "from", p, "to", np, "bytes", n)
	s.free(p)
	return np
}

func (s *headerStrategy) free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	h := headerOf(p)
	raw := h.rawOf(p)
	// Clear the header so a stale pointer trips the memdebug check.
	*h = header{}
	s.sys.Free(raw)
}

func (s *headerStrategy) kind() Strategy { return StrategyHeader }
