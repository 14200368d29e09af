//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package sysmem

// Map allocates n bytes on the Go heap when no page mapping API is wired up.
func Map(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrZeroLength
	}
	return make([]byte, n), nil
}

// Unmap is a no-op; the garbage collector reclaims heap-backed mappings.
func Unmap([]byte) error {
	return nil
}

// OffHeap reports whether Map returns memory outside the Go heap.
const OffHeap = false
