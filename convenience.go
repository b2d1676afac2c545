package slotvec

import "iter"

// Collect creates a SlotVec from the elements produced by seq, in order.
func Collect[T any](seq iter.Seq[T]) *SlotVec[T] {
	sv := New[T]()
	sv.Extend(seq)
	return sv
}

// Extend pushes every element produced by seq.
func (sv *SlotVec[T]) Extend(seq iter.Seq[T]) {
	for elem := range seq {
		sv.Push(elem)
	}
}

// ExtendFromSlice pushes every element of s after a single upfront
// reservation, so at most one reallocation happens regardless of len(s).
func (sv *SlotVec[T]) ExtendFromSlice(s []T) {
	sv.Reserve(len(s))
	for _, elem := range s {
		sv.Push(elem)
	}
}

// Contains reports whether sv holds an element equal to elem. O(n).
func Contains[T comparable](sv *SlotVec[T], elem T) bool {
	for v := range sv.Values() {
		if v == elem {
			return true
		}
	}
	return false
}

// Equal reports whether a and b hold equal elements at exactly the same
// indices. Capacity and hole positions beyond the high-water mark do not
// matter.
func Equal[T comparable](a, b *SlotVec[T]) bool {
	if a.NumElements() != b.NumElements() {
		return false
	}

	ai, aok := a.FirstIndex()
	bi, bok := b.FirstIndex()
	for aok && bok {
		if ai != bi || *a.core.Get(ai) != *b.core.Get(bi) {
			return false
		}
		ai, aok = a.core.NextFilledFrom(ai + 1)
		bi, bok = b.core.NextFilledFrom(bi + 1)
	}
	return aok == bok
}
