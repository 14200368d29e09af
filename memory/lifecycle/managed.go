package lifecycle

// Element is the constraint for types with their own lifecycle. P is the
// pointer type *T; the methods are the element's constructors, destructor,
// assignment operators and equality.
//
// CopyFrom and MoveFrom construct the receiver from scratch and must not
// read its previous contents. MoveFrom and MoveAssign may leave src in any
// state that Destroy accepts.
type Element[T any] interface {
	*T
	Init()
	Destroy()
	CopyFrom(src *T)
	Assign(src *T)
	MoveFrom(src *T)
	MoveAssign(src *T)
	Equal(other *T) bool
}

// Managed implements Ops by calling Element methods one element at a time.
type Managed[T any, P Element[T]] struct{}

func (Managed[T, P]) DefaultConstructItems(dst []T) {
	for i := range dst {
		P(&dst[i]).Init()
	}
}

func (Managed[T, P]) DestructItems(dst []T) {
	for i := range dst {
		P(&dst[i]).Destroy()
	}
}

func (Managed[T, P]) ConstructItems(dst, src []T) {
	src = source(dst, src)
	for i := range dst {
		P(&dst[i]).CopyFrom(&src[i])
	}
}

func (Managed[T, P]) CopyAssignItems(dst, src []T) {
	src = source(dst, src)
	for i := range dst {
		P(&dst[i]).Assign(&src[i])
	}
}

// RelocateConstructItems moves each element and then destroys its source.
// When dst lies inside src past its start it walks back to front, so the
// result matches a memmove of the range. Relocating a range onto itself is
// the identity.
func (Managed[T, P]) RelocateConstructItems(dst, src []T) {
	src = source(dst, src)
	if len(dst) == 0 || sameStart(dst, src) {
		return
	}
	if relocateBackward(dst, src) {
		for i := len(dst) - 1; i >= 0; i-- {
			P(&dst[i]).MoveFrom(&src[i])
			P(&src[i]).Destroy()
		}
		return
	}
	for i := range dst {
		P(&dst[i]).MoveFrom(&src[i])
		P(&src[i]).Destroy()
	}
}

func (Managed[T, P]) MoveConstructItems(dst, src []T) {
	src = source(dst, src)
	for i := range dst {
		P(&dst[i]).MoveFrom(&src[i])
	}
}

func (Managed[T, P]) MoveAssignItems(dst, src []T) {
	src = source(dst, src)
	for i := range dst {
		P(&dst[i]).MoveAssign(&src[i])
	}
}

// CompareItems stops at the first unequal pair.
func (Managed[T, P]) CompareItems(a, b []T) bool {
	b = source(a, b)
	for i := range a {
		if !P(&a[i]).Equal(&b[i]) {
			return false
		}
	}
	return true
}

// ConstructibleFrom is satisfied by *D when a D can be constructed from an S.
type ConstructibleFrom[D, S any] interface {
	*D
	ConstructFrom(src *S)
}

// ConstructFrom constructs each element of dst from the matching element of
// src, which may be of a different type. For identical plain types use
// Trivial.ConstructItems instead.
func ConstructFrom[D, S any, P ConstructibleFrom[D, S]](dst []D, src []S) {
	src = source(dst, src)
	for i := range dst {
		P(&dst[i]).ConstructFrom(&src[i])
	}
}
