package lifecycle

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackedOps = Managed[tracked, *tracked]

func TestManaged_DefaultConstructAndDestruct(t *testing.T) {
	resetJournal()
	var ops trackedOps

	s := make([]tracked, 5)
	ops.DefaultConstructItems(s)
	assert.Equal(t, 5, jr.inits)
	for i := range s {
		assert.True(t, s[i].alive, "element %d constructed", i)
	}

	ops.DestructItems(s)
	assert.Equal(t, 5, jr.destroys)
	for i := range s {
		assert.False(t, s[i].alive, "element %d destroyed", i)
	}
}

func TestManaged_ConstructAndAssign(t *testing.T) {
	resetJournal()
	var ops trackedOps
	src := trackedRange(7, 8, 9)

	dst := make([]tracked, 3)
	ops.ConstructItems(dst, src)
	assert.Equal(t, []int{7, 8, 9}, ids(dst))
	assert.Equal(t, 3, jr.copies)

	live := trackedRange(1, 2)
	ops.CopyAssignItems(live, src[1:])
	assert.Equal(t, []int{8, 9}, ids(live))
	assert.Equal(t, 2, jr.assigns)

	ops.MoveAssignItems(live, src)
	assert.Equal(t, []int{7, 8}, ids(live))
	assert.Equal(t, 2, jr.moveAssigns)
	assert.True(t, src[0].moved)
	assert.False(t, src[2].moved)
}

// TestManaged_MoveConstructThenDestruct checks each element gets exactly one
// construction and one destruction, construction first.
func TestManaged_MoveConstructThenDestruct(t *testing.T) {
	resetJournal()
	var ops trackedOps
	src := trackedRange(0, 1, 2, 3)
	dst := make([]tracked, 4)

	ops.MoveConstructItems(dst, src)
	assert.Equal(t, 0, jr.destroys, "move-construct must not destruct the source")
	ops.DestructItems(src)

	assert.Equal(t, 4, jr.moves)
	assert.Equal(t, 4, jr.destroys)
	for id := range 4 {
		moved := slices.Index(jr.events, fmt.Sprintf("move %d", id))
		destroyed := slices.Index(jr.events, fmt.Sprintf("destroy %d", id))
		require.NotEqual(t, -1, moved)
		require.NotEqual(t, -1, destroyed)
		assert.Less(t, moved, destroyed, "element %d constructed before destroyed", id)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, ids(dst))
}

func TestManaged_RelocateDisjoint(t *testing.T) {
	resetJournal()
	src := trackedRange(4, 5, 6)
	dst := make([]tracked, 3)

	trackedOps{}.RelocateConstructItems(dst, src)

	assert.Equal(t, []int{4, 5, 6}, ids(dst))
	for i := range src {
		assert.False(t, src[i].alive, "source %d left destructed", i)
		assert.True(t, dst[i].alive)
	}
	assert.Equal(t, []string{"move 4", "destroy 4", "move 5", "destroy 5", "move 6", "destroy 6"}, jr.events)
}

// TestManaged_RelocateOverlapMatchesMemmove runs the overlap patterns through
// the element-wise path and compares the final ids with memmove.
func TestManaged_RelocateOverlapMatchesMemmove(t *testing.T) {
	tests := []struct {
		name           string
		dstOff, srcOff int
		count          int
	}{
		{"shift left by 1", 0, 1, 7},
		{"shift right by 1", 1, 0, 7},
		{"shift left by 2", 1, 3, 5},
		{"shift right by 3", 3, 0, 5},
		{"disjoint", 0, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetJournal()
			buf := trackedRange(0, 1, 2, 3, 4, 5, 6, 7)
			want := []int32{0, 1, 2, 3, 4, 5, 6, 7}

			trackedOps{}.RelocateConstructItems(buf[tt.dstOff:tt.dstOff+tt.count], buf[tt.srcOff:tt.srcOff+tt.count])
			memmoveRef(want, tt.dstOff, tt.srcOff, tt.count)

			for i := tt.dstOff; i < tt.dstOff+tt.count; i++ {
				assert.Equal(t, int(want[i]), buf[i].id, "slot %d", i)
				assert.True(t, buf[i].alive, "destination slot %d must be live", i)
			}
			for i := tt.srcOff; i < tt.srcOff+tt.count; i++ {
				inDst := i >= tt.dstOff && i < tt.dstOff+tt.count
				if !inDst {
					assert.False(t, buf[i].alive, "vacated slot %d must be destructed", i)
				}
			}
			assert.Equal(t, tt.count, jr.moves)
			assert.Equal(t, tt.count, jr.destroys)
		})
	}
}

func TestManaged_RelocateOntoItselfIsIdentity(t *testing.T) {
	resetJournal()
	s := trackedRange(1, 2, 3)
	trackedOps{}.RelocateConstructItems(s, s)
	assert.Equal(t, []int{1, 2, 3}, ids(s))
	assert.Zero(t, jr.moves)
	assert.Zero(t, jr.destroys)
}

// Self-assignment is passed straight through to the element.
func TestManaged_SelfAssignNotGuarded(t *testing.T) {
	resetJournal()
	s := trackedRange(1, 2, 3)
	trackedOps{}.CopyAssignItems(s, s)
	assert.Equal(t, 3, jr.assigns)
	assert.Equal(t, []int{1, 2, 3}, ids(s))
}

func TestManaged_CompareShortCircuits(t *testing.T) {
	resetJournal()
	a := trackedRange(1, 2, 3, 4)
	b := trackedRange(1, 9, 3, 4)

	assert.False(t, trackedOps{}.CompareItems(a, b))
	assert.Equal(t, 2, jr.equals, "comparison stops at the first mismatch")

	resetJournal()
	assert.True(t, trackedOps{}.CompareItems(a, trackedRange(1, 2, 3, 4)))
	assert.Equal(t, 4, jr.equals)
}

func TestManaged_ZeroCount(t *testing.T) {
	resetJournal()
	var ops trackedOps
	assert.True(t, ops.CompareItems(nil, nil))
	ops.DefaultConstructItems(nil)
	ops.DestructItems(nil)
	ops.ConstructItems(nil, nil)
	ops.CopyAssignItems(nil, nil)
	ops.RelocateConstructItems(nil, nil)
	ops.MoveConstructItems(nil, nil)
	ops.MoveAssignItems(nil, nil)
	assert.Equal(t, journal{}, jr, "no element method may run for an empty range")
}

// ============================================================================
// Failure propagation
// ============================================================================

type fragile struct {
	v     int
	built bool
}

func (f *fragile) Init()                   { f.built = true }
func (f *fragile) Destroy()                { f.built = false }
func (f *fragile) Assign(src *fragile)     { f.v = src.v }
func (f *fragile) MoveFrom(src *fragile)   { f.CopyFrom(src) }
func (f *fragile) MoveAssign(src *fragile) { f.v = src.v }
func (f *fragile) Equal(o *fragile) bool   { return f.v == o.v }

func (f *fragile) CopyFrom(src *fragile) {
	if src.v < 0 {
		panic("fragile: negative value")
	}
	*f = fragile{v: src.v, built: true}
}

// TestManaged_PanicLeavesPartialRange pins the no-rollback guarantee.
func TestManaged_PanicLeavesPartialRange(t *testing.T) {
	src := []fragile{{v: 1}, {v: 2}, {v: -1}, {v: 4}}
	dst := make([]fragile, 4)

	assert.PanicsWithValue(t, "fragile: negative value", func() {
		Managed[fragile, *fragile]{}.ConstructItems(dst, src)
	})
	assert.True(t, dst[0].built)
	assert.True(t, dst[1].built)
	assert.False(t, dst[2].built)
	assert.False(t, dst[3].built, "construction stops at the failing element")
}

// ============================================================================
// Converting construction
// ============================================================================

type widened struct {
	v      int64
	source string
}

func (w *widened) ConstructFrom(src *int16) {
	*w = widened{v: int64(*src), source: "int16"}
}

func TestConstructFrom(t *testing.T) {
	src := []int16{-3, 0, 300, 99}
	dst := make([]widened, 3)

	ConstructFrom(dst, src)

	assert.Equal(t, []widened{{-3, "int16"}, {0, "int16"}, {300, "int16"}}, dst)
	ConstructFrom([]widened(nil), []int16(nil))
}

func TestManaged_ShortSourcePanicsDespiteCapacity(t *testing.T) {
	resetJournal()
	backing := trackedRange(1, 2, 3)
	dst := make([]tracked, 3)

	assert.Panics(t, func() { trackedOps{}.RelocateConstructItems(dst, backing[:1]) })
	assert.Panics(t, func() { ConstructFrom(make([]widened, 2), make([]int16, 1, 8)) })
	assert.Zero(t, jr.moves, "no element is touched before the length check")
}
