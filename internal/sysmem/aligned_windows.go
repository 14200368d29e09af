//go:build windows

package sysmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	ucrt               = windows.NewLazySystemDLL("ucrtbase.dll")
	procAlignedMalloc  = ucrt.NewProc("_aligned_malloc")
	procAlignedRealloc = ucrt.NewProc("_aligned_realloc")
	procAlignedFree    = ucrt.NewProc("_aligned_free")
)

// ucrtAligned calls the C runtime's _aligned_malloc family.
type ucrtAligned struct{}

func nativeAligned() Aligned {
	for _, p := range []*windows.LazyProc{procAlignedMalloc, procAlignedRealloc, procAlignedFree} {
		if p.Find() != nil {
			return nil
		}
	}
	return ucrtAligned{}
}

func (ucrtAligned) AlignedMalloc(size, align uintptr) unsafe.Pointer {
	r, _, _ := procAlignedMalloc.Call(size, align)
	return unsafe.Pointer(r) //nolint:govet // address owned by the C runtime
}

func (ucrtAligned) AlignedRealloc(p unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	r, _, _ := procAlignedRealloc.Call(uintptr(p), size, align)
	return unsafe.Pointer(r) //nolint:govet // address owned by the C runtime
}

func (ucrtAligned) AlignedFree(p unsafe.Pointer) {
	if p == nil {
		return
	}
	_, _, _ = procAlignedFree.Call(uintptr(p))
}
