package lifecycle

import "fmt"

// ============================================================================
// Instrumented element
// ============================================================================

// journal records every lifecycle call made on tracked values.
type journal struct {
	inits, destroys, copies, assigns, moves, moveAssigns, equals int
	events                                                       []string
}

var jr journal

func resetJournal() { jr = journal{} }

func (j *journal) log(format string, args ...any) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

// tracked is a non-trivial element whose every lifecycle call is observable.
type tracked struct {
	id    int
	alive bool
	moved bool
}

var _ Ops[tracked] = Managed[tracked, *tracked]{}

func (t *tracked) Init() {
	jr.inits++
	*t = tracked{alive: true}
}

func (t *tracked) Destroy() {
	jr.destroys++
	jr.log("destroy %d", t.id)
	t.alive = false
}

func (t *tracked) CopyFrom(src *tracked) {
	jr.copies++
	*t = tracked{id: src.id, alive: true}
}

func (t *tracked) Assign(src *tracked) {
	jr.assigns++
	t.id = src.id
}

func (t *tracked) MoveFrom(src *tracked) {
	jr.moves++
	jr.log("move %d", src.id)
	*t = tracked{id: src.id, alive: true}
	src.moved = true
}

func (t *tracked) MoveAssign(src *tracked) {
	jr.moveAssigns++
	t.id = src.id
	src.moved = true
}

func (t *tracked) Equal(other *tracked) bool {
	jr.equals++
	return t.id == other.id
}

func trackedRange(ids ...int) []tracked {
	out := make([]tracked, len(ids))
	for i, id := range ids {
		out[i] = tracked{id: id, alive: true}
	}
	return out
}

func ids(s []tracked) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = s[i].id
	}
	return out
}
