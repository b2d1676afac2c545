package slotvec

import "iter"

// All returns an iterator over index/element pairs in ascending index order.
// The container must not be mutated while iterating.
//
//	for idx, v := range sv.All() {
//	    fmt.Println(idx, v)
//	}
func (sv *SlotVec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		idx, ok := sv.core.NextFilledFrom(0)
		for ok {
			if !yield(idx, *sv.core.Get(idx)) {
				return
			}
			idx, ok = sv.core.NextFilledFrom(idx + 1)
		}
	}
}

// Backward returns an iterator over index/element pairs in descending index
// order. The container must not be mutated while iterating.
func (sv *SlotVec[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if sv.core.Len() == 0 {
			return
		}
		idx, ok := sv.core.PrevFilledFrom(sv.core.Len() - 1)
		for ok {
			if !yield(idx, *sv.core.Get(idx)) {
				return
			}
			if idx == 0 {
				return
			}
			idx, ok = sv.core.PrevFilledFrom(idx - 1)
		}
	}
}

// Values returns an iterator over the elements in ascending index order.
func (sv *SlotVec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range sv.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Indices returns an iterator over the occupied indices in ascending order.
func (sv *SlotVec[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		idx, ok := sv.core.NextFilledFrom(0)
		for ok {
			if !yield(idx) {
				return
			}
			idx, ok = sv.core.NextFilledFrom(idx + 1)
		}
	}
}

// Ptrs returns an iterator yielding each occupied index together with a
// pointer to its element, for in-place mutation:
//
//	for _, p := range sv.Ptrs() {
//	    *p *= 2
//	}
//
// Each index is yielded at most once and the pointer is re-derived from the
// store per slot, so the yielded pointers never alias. The caller must not
// mutate the container itself (push, remove, reserve, compact) while
// iterating; that exclusivity is the only thing keeping the pointers valid.
func (sv *SlotVec[T]) Ptrs() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		idx, ok := sv.core.NextFilledFrom(0)
		for ok {
			if !yield(idx, sv.core.Get(idx)) {
				return
			}
			idx, ok = sv.core.NextFilledFrom(idx + 1)
		}
	}
}

// Drain returns a consuming iterator: every yielded element is removed from
// the container as it is produced, in ascending index order. Breaking out
// early leaves the remaining elements in place.
func (sv *SlotVec[T]) Drain() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		idx, ok := sv.core.NextFilledFrom(0)
		for ok {
			sv.numElems--
			elem := sv.core.RemoveAt(idx)
			if !yield(idx, elem) {
				return
			}
			idx, ok = sv.core.NextFilledFrom(idx + 1)
		}
	}
}
