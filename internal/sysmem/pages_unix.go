//go:build linux || darwin || freebsd || netbsd || openbsd

package sysmem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Map returns n bytes of zeroed, private, anonymous read-write memory.
// The memory lives outside the Go heap and must be released with Unmap.
func Map(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrZeroLength
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("sysmem: mmap %d bytes: %w", n, err)
	}
	return data, nil
}

// Unmap releases a mapping returned by Map.
func Unmap(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

// OffHeap reports whether Map returns memory outside the Go heap.
const OffHeap = true
