package alloc

import (
	"unsafe"

	"github.com/joshuapare/memkit/internal/check"
	"github.com/joshuapare/memkit/memory/align"
)

// header precedes every block handed out by the header strategy.
// raw must stay the last field: it sits immediately before the returned address.
type header struct {
	size uintptr // requested byte count
	raw  uintptr // address returned by the System allocator
}

const headerSize = unsafe.Sizeof(header{})

// headerOf returns the header stored immediately before p.
func headerOf(p unsafe.Pointer) *header {
	h := (*header)(unsafe.Add(p, -int(headerSize)))
	check.Thatf(h.raw != 0 && uintptr(p)-h.raw >= headerSize,
		"alloc: corrupt header before %p (raw=%#x)", p, h.raw)
	return h
}

// rawOf returns the System allocator's pointer for the block at p.
// It is derived from p rather than converted from the stored word.
func (h *header) rawOf(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(p, -int(uintptr(p)-h.raw))
}

// place writes a header for a block of size bytes carved out of raw so that the
// returned address is aligned to alignment. raw must provide at least
// size+alignment+headerSize bytes.
func place(raw unsafe.Pointer, size, alignment uintptr) unsafe.Pointer {
	base := uintptr(raw)
	off := headerSize + align.Padding(base+headerSize, alignment)
	p := unsafe.Add(raw, off)
	check.That(align.Pointer(p, alignment), "alloc: placed block is misaligned")
	h := (*header)(unsafe.Add(p, -int(headerSize)))
	h.size = size
	h.raw = base
	return p
}
