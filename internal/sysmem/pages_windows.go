//go:build windows

package sysmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Map returns n bytes of committed, zeroed read-write memory from VirtualAlloc.
// The memory lives outside the Go heap and must be released with Unmap.
func Map(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrZeroLength
	}
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("sysmem: VirtualAlloc %d bytes: %w", n, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n), nil
}

// Unmap releases a mapping returned by Map.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	// MEM_RELEASE requires a zero size and frees the whole reservation.
	addr := uintptr(unsafe.Pointer(&data[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

// OffHeap reports whether Map returns memory outside the Go heap.
const OffHeap = true
