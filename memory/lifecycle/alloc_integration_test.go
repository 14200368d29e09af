package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/memory/alloc"
)

type particle struct {
	Pos  [3]float32
	Mass float32
	ID   uint32
}

// growable is the smallest container shape: allocator buffer plus Ops.
type growable[T any, O Ops[T]] struct {
	a   *alloc.Allocator
	buf []T
	n   int
	ops O
}

func (g *growable[T, O]) push(v T) error {
	if g.n == len(g.buf) {
		next, err := alloc.MakeSlice[T](g.a, max(4, 2*len(g.buf)))
		if err != nil {
			return err
		}
		g.ops.RelocateConstructItems(next[:g.n], g.buf[:g.n])
		alloc.FreeSlice(g.a, g.buf)
		g.buf = next
	}
	g.ops.ConstructItems(g.buf[g.n:g.n+1], []T{v})
	g.n++
	return nil
}

// insertFront shifts the live range right by one in place.
func (g *growable[T, O]) insertFront(v T) error {
	if err := g.push(v); err != nil {
		return err
	}
	g.ops.RelocateConstructItems(g.buf[1:g.n], g.buf[0:g.n-1])
	g.ops.ConstructItems(g.buf[:1], []T{v})
	return nil
}

func TestLifecycle_OnAllocatorMemory(t *testing.T) {
	track := alloc.NewTracking(nil)
	a, err := alloc.New(alloc.Config{Strategy: alloc.StrategyHeader, System: track})
	require.NoError(t, err)

	g := &growable[particle, Trivial[particle]]{a: a}
	for i := range 37 {
		require.NoError(t, g.push(particle{ID: uint32(i), Mass: float32(i) / 2}))
	}
	require.NoError(t, g.insertFront(particle{ID: 1000}))

	require.Equal(t, 38, g.n)
	assert.Equal(t, uint32(1000), g.buf[0].ID)
	for i := 1; i < g.n; i++ {
		assert.Equal(t, uint32(i-1), g.buf[i].ID)
	}

	clone, err := alloc.MakeSlice[particle](a, g.n)
	require.NoError(t, err)
	g.ops.ConstructItems(clone, g.buf[:g.n])
	assert.True(t, g.ops.CompareItems(clone, g.buf[:g.n]))
	clone[5].Mass = -1
	assert.False(t, g.ops.CompareItems(clone, g.buf[:g.n]))

	g.ops.DestructItems(g.buf[:g.n])
	alloc.FreeSlice(a, clone)
	alloc.FreeSlice(a, g.buf)
	assert.False(t, track.Stats().Leaked())
}
