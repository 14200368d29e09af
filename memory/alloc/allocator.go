package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/memkit/internal/sysmem"
)

// Allocator hands out aligned blocks using the strategy picked by New.
type Allocator struct {
	s   strategy
	log *slog.Logger
}

// New builds an Allocator from cfg. The strategy is resolved here, once:
//
//	a, err := alloc.New(alloc.Config{Strategy: alloc.StrategyHeader})
//	if err != nil {
//	    return err
//	}
//	p, err := a.Malloc(100, 32)
func New(cfg Config) (*Allocator, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	aligned := cfg.Aligned
	if aligned == nil {
		if api := sysmem.NativeAligned(); api != nil {
			aligned = api
		}
	}

	var s strategy
	switch cfg.Strategy {
	case StrategyAuto:
		if aligned != nil {
			s = &nativeStrategy{api: aligned}
		} else {
			s = newHeaderStrategy(cfg.System, log)
		}
	case StrategyNative:
		if aligned == nil {
			return nil, ErrNoNativeAPI
		}
		s = &nativeStrategy{api: aligned}
	case StrategyHeader:
		s = newHeaderStrategy(cfg.System, log)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, cfg.Strategy)
	}

	log.Debug("alloc: strategy selected", "requested", cfg.Strategy, "strategy", s.kind())
	return &Allocator{s: s, log: log}, nil
}

func newHeaderStrategy(sys System, log *slog.Logger) *headerStrategy {
	if sys == nil {
		sys = NewHeapSystem()
	}
	return &headerStrategy{sys: sys, log: log}
}

// Strategy reports the strategy this allocator resolved to.
func (a *Allocator) Strategy() Strategy {
	return a.s.kind()
}

// Malloc allocates size bytes aligned to EffectiveAlignment(size, align).
//
// A zero size returns (nil, nil). A non-zero align that is not a power of two
// returns ErrInvalidAlignment. Failure to obtain memory returns ErrOutOfMemory.
func (a *Allocator) Malloc(size, align uintptr) (unsafe.Pointer, error) {
	if !ValidAlignment(align) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlignment, align)
	}
	if size == 0 {
		return nil, nil
	}
	p := a.s.alloc(size, EffectiveAlignment(size, align))
	if p == nil {
		a.log.Warn("alloc: malloc failed", "size", size, "align", align, "strategy", a.s.kind())
		return nil, fmt.Errorf("%w: %d bytes at alignment %d", ErrOutOfMemory, size, align)
	}
	return p, nil
}

// Realloc resizes the block at p to size bytes, preserving the first
// min(old, size) bytes.
//
// A nil p behaves as Malloc. A zero size frees p and returns (nil, nil).
// On failure the original block is left untouched and the caller still owns it.
//
// align must match the value the block was allocated with. The native
// strategy keeps every block at LargeAlignment or more, so crossing the
// 16-byte size boundary never changes the alignment it passes to the
// platform; a different requested align still would.
func (a *Allocator) Realloc(p unsafe.Pointer, size, align uintptr) (unsafe.Pointer, error) {
	if !ValidAlignment(align) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAlignment, align)
	}
	if p == nil {
		return a.Malloc(size, align)
	}
	if size == 0 {
		a.s.free(p)
		return nil, nil
	}
	np := a.s.realloc(p, size, EffectiveAlignment(size, align))
	if np == nil {
		a.log.Warn("alloc: realloc failed", "ptr", p, "size", size, "align", align, "strategy", a.s.kind())
		return nil, fmt.Errorf("%w: realloc to %d bytes at alignment %d", ErrOutOfMemory, size, align)
	}
	return np, nil
}

// Free releases a block returned by Malloc or Realloc. Free(nil) is a no-op.
func (a *Allocator) Free(p unsafe.Pointer) {
	a.s.free(p)
}

// QuantizeSize returns the usable size of a request; see the package-level QuantizeSize.
func (a *Allocator) QuantizeSize(size, align uintptr) uintptr {
	return QuantizeSize(size, align)
}
