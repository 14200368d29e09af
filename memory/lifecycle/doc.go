// Package lifecycle implements bulk element operations over contiguous ranges:
// default-construct, destruct, construct, copy-assign, relocate-construct,
// move-construct, move-assign and compare.
//
// Containers use these to grow, insert, erase and compare without repeating
// per-type dispatch at every call site. The count of every operation is
// len(dst) (or len(a) for CompareItems); a shorter source slice panics, even
// when its capacity would cover the count. No operation allocates or frees the ranges it is given.
//
// # Choosing a Strategy
//
// The choice between a bulk byte operation and element-wise calls is made at
// compile time by the Ops implementation a container is instantiated with:
//
//   - Trivial[T]: zero-fill, memmove-style copy and raw byte comparison. Use it
//     for plain values whose copy is a byte copy and whose equality is byte
//     equality.
//   - Managed[T, P]: calls the element's Init, Destroy, CopyFrom, Assign,
//     MoveFrom, MoveAssign and Equal methods one element at a time.
//
// A container typically carries the choice as a type parameter:
//
//	type Vec[T any, O lifecycle.Ops[T]] struct {
//	    items []T
//	    ops   O
//	}
//
//	var ints Vec[int32, lifecycle.Trivial[int32]]
//	var names Vec[Name, lifecycle.Managed[Name, *Name]]
//
// # Overlap
//
// RelocateConstructItems accepts overlapping ranges on both paths and produces
// the same result as memmove. The other operations assume disjoint ranges, or
// dst == src with whatever self-assignment means for the element type.
//
// # Failure
//
// If an element method panics, the panic propagates immediately. Elements
// already processed stay constructed, assigned or destroyed; nothing is rolled
// back.
package lifecycle
