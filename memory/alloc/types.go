package alloc

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"
)

// System is a plain, unaligned system allocator. The header strategy builds
// aligned blocks on top of one.
//
// Malloc returns nil on failure. Free is only ever called with pointers
// previously returned by Malloc.
type System interface {
	Malloc(size uintptr) unsafe.Pointer
	Free(p unsafe.Pointer)
}

// AlignedSystem is a native aligned allocation API. The native strategy
// delegates to one directly.
//
// AlignedMalloc and AlignedRealloc return nil on failure. AlignedFree accepts nil.
type AlignedSystem interface {
	AlignedMalloc(size, align uintptr) unsafe.Pointer
	AlignedRealloc(p unsafe.Pointer, size, align uintptr) unsafe.Pointer
	AlignedFree(p unsafe.Pointer)
}

// Strategy selects how aligned blocks are produced.
type Strategy uint8

const (
	// StrategyAuto uses the native strategy when the platform has an aligned
	// allocation API and the header strategy otherwise.
	StrategyAuto Strategy = iota
	// StrategyNative delegates to an AlignedSystem.
	StrategyNative
	// StrategyHeader over-allocates from a System and stores a hidden header.
	StrategyHeader
)

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategyNative:
		return "native"
	case StrategyHeader:
		return "header"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// ParseStrategy converts a strategy name ("auto", "native", "header") to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return StrategyAuto, nil
	case "native":
		return StrategyNative, nil
	case "header", "fallback":
		return StrategyHeader, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Config configures New.
type Config struct {
	// Strategy picks the allocation strategy. Default: StrategyAuto.
	Strategy Strategy

	// System backs the header strategy. Default: a new HeapSystem.
	System System

	// Aligned backs the native strategy. Default: the platform API, if any.
	Aligned AlignedSystem

	// Logger receives debug and warning records. Default: discard.
	Logger *slog.Logger
}
