// Package alloc provides aligned heap allocation for engine containers.
//
// # Overview
//
// An Allocator hands out raw blocks at a caller-chosen alignment and takes them
// back again. Containers ask it for a buffer sized for N elements, then use the
// lifecycle package to construct, move and destroy elements inside that buffer.
//
// # Operations
//
//   - Malloc(size, align): allocate size bytes aligned to at least align
//   - Realloc(p, size, align): resize a block, preserving min(old, new) bytes
//   - Free(p): release a block; nil is a no-op
//   - QuantizeSize(size, align): usable bytes for a request (currently identity)
//
// # Alignment Policy
//
// The effective alignment is max(align, natural), where natural is 16 bytes for
// requests of 16 bytes or more and 8 bytes otherwise:
//
//	EffectiveAlignment(4, 0)   = 8
//	EffectiveAlignment(100, 0) = 16
//	EffectiveAlignment(100, 64) = 64
//
// A non-zero alignment that is not a power of two is rejected with
// ErrInvalidAlignment before any memory is touched.
//
// # Strategies
//
// Two strategies implement the operations; New picks one once:
//
//   - native: delegates to the platform's aligned allocation API
//     (ucrt _aligned_malloc family on Windows)
//   - header: over-allocates from a plain System allocator and stores a
//     two-word header immediately before the returned address
//
// The header layout is:
//
//	raw ... [size word][pointer word][aligned block ...]
//	                                 ^ returned address
//
// The pointer word holds the address the System allocator returned and the size
// word holds the requested byte count. Free and Realloc read them back to
// release the true block and to know how many bytes to carry over.
//
// # Zero-Size Requests
//
// Malloc(0, align) returns (nil, nil) on both strategies, and Realloc(p, 0, align)
// frees p and returns (nil, nil).
//
// # Failure
//
// Allocation failure returns a nil pointer with ErrOutOfMemory. There are no
// retries. A failed Realloc leaves the original block untouched and still owned
// by the caller. Double frees and foreign pointers are not detected.
//
// # Thread Safety
//
// The Allocator adds no locking of its own. The bundled System implementations
// guard their bookkeeping with a mutex, so distinct pointers may be allocated
// and freed from multiple goroutines. Operations racing on the same pointer
// must be serialized by the caller.
//
// # Element Types
//
// Memory from PageSystem lives outside the Go heap and memory from HeapSystem is
// typed as bytes, so the garbage collector never scans either. Only store
// pointer-free element types in allocator memory (see MakeSlice).
package alloc
