package alloc

import "errors"

var (
	// ErrOutOfMemory indicates the system allocator could not satisfy a request,
	// or the padded request size overflowed.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrInvalidAlignment indicates a non-zero alignment that is not a power of two.
	ErrInvalidAlignment = errors.New("alloc: alignment must be a power of two")

	// ErrNoNativeAPI indicates StrategyNative was requested on a platform without
	// an aligned allocation API and none was supplied in Config.
	ErrNoNativeAPI = errors.New("alloc: no native aligned allocation API")

	// ErrUnknownStrategy indicates a strategy name or value that is not recognised.
	ErrUnknownStrategy = errors.New("alloc: unknown strategy")
)
