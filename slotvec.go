// Package slotvec provides a growable, indexable container with stable
// indices and O(1) removal.
//
// A SlotVec hands out an index for every inserted element. Unlike a plain
// slice, removing an element never shifts its neighbours: the index of every
// surviving element keeps referring to the same logical slot until that
// element is explicitly removed. Removal is O(1) and leaves a hole behind;
// memory for holes is only reclaimed on request (MakeCompact, ShrinkToFit).
//
// That trade makes SlotVec the natural element table for secondary
// structures — graphs, arenas, anything that stores indices as long-lived
// identifiers:
//
//	sv := slotvec.New[string]()
//	a := sv.Push("alpha")
//	b := sv.Push("beta")
//	c := sv.Push("gamma")
//
//	sv.Remove(b)
//
//	// a and c still resolve, untouched by the removal.
//	v, _ := sv.Get(c) // "gamma"
//	_ = v
//	_ = a
//
// # Backends
//
// The storage strategy is pluggable via the core.Core contract. The default
// backend tracks occupancy in packed bit words next to a dense element
// buffer, which makes slot scans fast; core.NewTaggedCore stores the flag
// inline with each element instead. Use WithCore to choose:
//
//	sv := slotvec.New[string](slotvec.WithCore[string](core.NewTaggedCore[string]()))
//
// # Concurrency
//
// A SlotVec is not synchronized. Mutation requires exclusive access. Any
// number of goroutines may perform read-only operations concurrently as long
// as no mutation is in flight.
package slotvec

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/slotvec/core"
)

// SlotVec is a growable container with stable indices and O(1) removal.
//
// The zero value is not usable; construct instances with New, FromSlice or
// Collect.
type SlotVec[T any] struct {
	core     core.Core[T]
	numElems int
	logger   *Logger
	metrics  MetricsCollector
}

// New creates an empty SlotVec backed by the default bit-tracked core.
//
//	sv := slotvec.New[int]()
//	sv := slotvec.New[int](slotvec.WithCapacity[int](128))
func New[T any](optFns ...func(o *Options[T])) *SlotVec[T] {
	opts := Options[T]{
		Logger:  NoopLogger(),
		Metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := opts.Core
	if c == nil {
		c = core.NewDefault[T]()
	}

	sv := &SlotVec[T]{
		core:    c,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}

	if opts.Capacity > 0 {
		sv.ReserveExact(opts.Capacity)
	}

	return sv
}

// FromSlice creates a SlotVec holding the elements of s at indices 0..len(s).
func FromSlice[T any](s []T) *SlotVec[T] {
	sv := New[T](WithCapacity[T](len(s)))
	for _, elem := range s {
		sv.Push(elem)
	}
	return sv
}

// Push appends elem at the next push index and returns that index. The
// returned index stays valid until the element is explicitly removed,
// regardless of later insertions and removals elsewhere. Amortized O(1).
func (sv *SlotVec[T]) Push(elem T) int {
	idx := sv.core.Len()
	sv.Reserve(1)
	sv.core.SetLen(idx + 1)
	sv.core.InsertAt(idx, elem)
	sv.numElems++
	return idx
}

// Insert places elem at idx. If the slot was filled, the previous element is
// replaced and returned with ok=true; if it was empty, elem fills the hole
// and ok is false. Panics if idx is negative or has never been reserved
// (idx ≥ Capacity()): such an index denotes no well-defined slot.
func (sv *SlotVec[T]) Insert(idx int, elem T) (old T, ok bool) {
	if idx < 0 || idx >= sv.core.Cap() {
		panic(fmt.Sprintf("slotvec: insert at index %d out of bounds (capacity %d)", idx, sv.core.Cap()))
	}

	if sv.core.HasElementAt(idx) {
		slot := sv.core.Get(idx)
		old = *slot
		*slot = elem
		return old, true
	}

	if idx >= sv.core.Len() {
		sv.core.SetLen(idx + 1)
	}
	sv.core.InsertAt(idx, elem)
	sv.numElems++
	return old, false
}

// Remove deletes the element at idx and returns it, or ok=false if the slot
// is a hole. No other index is shifted or invalidated. Panics if idx is
// negative or ≥ Capacity(). O(1).
func (sv *SlotVec[T]) Remove(idx int) (elem T, ok bool) {
	if idx < 0 || idx >= sv.core.Cap() {
		panic(fmt.Sprintf("slotvec: remove at index %d out of bounds (capacity %d)", idx, sv.core.Cap()))
	}

	if !sv.core.HasElementAt(idx) {
		return elem, false
	}
	sv.numElems--
	return sv.core.RemoveAt(idx), true
}

// RemoveFirst deletes and returns the element with the smallest index.
// Finding it is O(n); if the index is already known, use Remove.
func (sv *SlotVec[T]) RemoveFirst() (T, bool) {
	if idx, ok := sv.FirstIndex(); ok {
		return sv.Remove(idx)
	}
	var zero T
	return zero, false
}

// RemoveLast deletes and returns the element with the largest index.
// Finding it is O(n); if the index is already known, use Remove.
func (sv *SlotVec[T]) RemoveLast() (T, bool) {
	if idx, ok := sv.LastIndex(); ok {
		return sv.Remove(idx)
	}
	var zero T
	return zero, false
}

// Get returns the element at idx, or ok=false if the slot is empty or idx is
// out of range. A hole is a normal state of this container, not an error.
func (sv *SlotVec[T]) Get(idx int) (elem T, ok bool) {
	if idx < 0 || idx >= sv.core.Cap() || !sv.core.HasElementAt(idx) {
		return elem, false
	}
	return *sv.core.Get(idx), true
}

// Mut returns a pointer to the element at idx for in-place mutation, or
// ok=false if the slot is empty or idx is out of range. The pointer is
// invalidated by any operation that may reallocate or remove the slot.
func (sv *SlotVec[T]) Mut(idx int) (*T, bool) {
	if idx < 0 || idx >= sv.core.Cap() || !sv.core.HasElementAt(idx) {
		return nil, false
	}
	return sv.core.Get(idx), true
}

// At returns a pointer to the element at idx and panics if there is none.
// The checked counterpart is Get/Mut.
func (sv *SlotVec[T]) At(idx int) *T {
	ptr, ok := sv.Mut(idx)
	if !ok {
		panic(fmt.Sprintf("slotvec: no element at index %d", idx))
	}
	return ptr
}

// Has reports whether an element exists at idx.
func (sv *SlotVec[T]) Has(idx int) bool {
	return idx >= 0 && idx < sv.core.Cap() && sv.core.HasElementAt(idx)
}

// NumElements returns the number of elements currently in the container.
// O(1): the count is maintained incrementally, never recomputed by scanning.
func (sv *SlotVec[T]) NumElements() int { return sv.numElems }

// IsEmpty reports whether the container holds no elements.
func (sv *SlotVec[T]) IsEmpty() bool { return sv.numElems == 0 }

// Capacity returns the number of slots the container can use without
// reallocating.
func (sv *SlotVec[T]) Capacity() int { return sv.core.Cap() }

// NextPushIndex returns the index the next Push will return.
func (sv *SlotVec[T]) NextPushIndex() int { return sv.core.Len() }

// Reserve ensures capacity for at least additional more pushes. Growth is
// amortized: when short, capacity jumps to at least double, so repeated
// single-element growth stays average O(1). Panics if the required capacity
// is not representable.
func (sv *SlotVec[T]) Reserve(additional int) {
	sv.reserve(additional, true)
}

// ReserveExact ensures capacity for exactly additional more pushes, without
// the amortized doubling. Panics if the required capacity is not
// representable.
func (sv *SlotVec[T]) ReserveExact(additional int) {
	sv.reserve(additional, false)
}

func (sv *SlotVec[T]) reserve(additional int, amortized bool) {
	if additional < 0 {
		panic("slotvec: negative reserve")
	}

	target := sv.core.Len() + additional
	if target < 0 {
		panic("slotvec: capacity overflow")
	}
	if sv.core.Cap() >= target {
		return
	}

	newCap := target
	if amortized && sv.core.Cap() > math.MaxInt/2 {
		panic("slotvec: capacity overflow")
	}
	if amortized && 2*sv.core.Cap() > newCap {
		newCap = 2 * sv.core.Cap()
	}

	oldCap := sv.core.Cap()
	sv.core.Realloc(newCap)
	sv.metrics.RecordGrow(oldCap, newCap)
	sv.logger.LogGrow(oldCap, newCap)
}

// ShrinkToFit reallocates the backing storage down to the current length
// (the high-water mark of used indices). It does not move elements and so
// does not invalidate indices; run one of the compaction methods first to
// actually squeeze out holes.
func (sv *SlotVec[T]) ShrinkToFit() {
	oldCap := sv.core.Cap()
	sv.core.Realloc(sv.core.Len())
	if oldCap != sv.core.Cap() {
		sv.metrics.RecordShrink(oldCap, sv.core.Cap())
	}
}

// Clear removes all elements. Capacity is retained.
func (sv *SlotVec[T]) Clear() {
	n := sv.numElems
	sv.core.Clear()
	sv.numElems = 0
	sv.logger.LogClear(n)
}

// IsCompact reports whether the elements occupy a contiguous prefix of the
// index space (no holes below the high-water mark).
func (sv *SlotVec[T]) IsCompact() bool {
	return sv.numElems == sv.core.Len()
}

// MakeCompact rearranges elements to fill all holes, preserving their
// relative order. O(n). Indices of every element past the first hole are
// invalidated. Afterwards IsCompact() is true and NextPushIndex() equals
// NumElements(); call ShrinkToFit to release the freed tail.
func (sv *SlotVec[T]) MakeCompact() {
	if sv.IsCompact() {
		return
	}

	start := time.Now()
	moved := 0

	// Everything below the first hole is already in place. From there on,
	// repeatedly swap the next filled slot into the write position. After a
	// swap every slot between the write position and the vacated slot is
	// empty, so the read cursor resumes past the vacated slot and no slot
	// is visited twice.
	if write, ok := sv.core.NextHoleFrom(0); ok {
		read := write + 1
		for {
			filled, found := sv.core.NextFilledFrom(read)
			if !found {
				break
			}
			sv.core.Swap(write, filled)
			moved++
			write++
			read = filled + 1
		}
	}

	sv.core.SetLen(sv.numElems)
	sv.metrics.RecordCompact(moved, time.Since(start))
	sv.logger.LogCompact("ordered", moved)
}

// ReorderingMakeCompact fills all holes with the fewest possible moves by
// pulling elements from the back into holes at the front. O(n) with at most
// one swap per hole, but the relative order of elements is destroyed.
func (sv *SlotVec[T]) ReorderingMakeCompact() {
	if sv.IsCompact() {
		return
	}

	start := time.Now()
	moved := 0

	if sv.numElems > 0 {
		hole, hok := sv.core.NextHoleFrom(0)
		filled, fok := sv.core.PrevFilledFrom(sv.core.Len() - 1)

		for hok && fok && hole < filled {
			sv.core.Swap(hole, filled)
			moved++

			hole, hok = sv.core.NextHoleFrom(hole + 1)
			if filled == 0 {
				break
			}
			filled, fok = sv.core.PrevFilledFrom(filled - 1)
		}
	}

	sv.core.SetLen(sv.numElems)
	sv.metrics.RecordCompact(moved, time.Since(start))
	sv.logger.LogCompact("reordering", moved)
}

// FirstIndex returns the smallest index holding an element.
func (sv *SlotVec[T]) FirstIndex() (int, bool) {
	return sv.core.NextFilledFrom(0)
}

// LastIndex returns the largest index holding an element.
func (sv *SlotVec[T]) LastIndex() (int, bool) {
	if sv.core.Len() == 0 {
		return 0, false
	}
	return sv.core.PrevFilledFrom(sv.core.Len() - 1)
}

// NextIndexFrom returns the smallest index ≥ idx holding an element. If idx
// itself holds an element, idx is returned.
func (sv *SlotVec[T]) NextIndexFrom(idx int) (int, bool) {
	if idx < 0 || idx >= sv.core.Len() {
		return 0, false
	}
	return sv.core.NextFilledFrom(idx)
}

// PrevIndexFrom returns the largest index ≤ idx holding an element. If idx
// itself holds an element, idx is returned.
func (sv *SlotVec[T]) PrevIndexFrom(idx int) (int, bool) {
	if idx < 0 || sv.core.Len() == 0 {
		return 0, false
	}
	return sv.core.PrevFilledFrom(idx)
}

// First returns the element with the smallest index.
func (sv *SlotVec[T]) First() (T, bool) {
	if idx, ok := sv.FirstIndex(); ok {
		return *sv.core.Get(idx), true
	}
	var zero T
	return zero, false
}

// Last returns the element with the largest index.
func (sv *SlotVec[T]) Last() (T, bool) {
	if idx, ok := sv.LastIndex(); ok {
		return *sv.core.Get(idx), true
	}
	var zero T
	return zero, false
}

// Clone returns a deep copy, duplicating all slots including holes. Elements
// are copied by assignment.
func (sv *SlotVec[T]) Clone() *SlotVec[T] {
	return &SlotVec[T]{
		core:     sv.core.Clone(),
		numElems: sv.numElems,
		logger:   sv.logger,
		metrics:  sv.metrics,
	}
}

// OccupancyBitmap exports the set of occupied indices as a Roaring bitmap.
// Useful for secondary structures that index into the container (graph
// adjacency, filter sets) and for compact serialization of the occupancy.
// Indices are limited to the uint32 range.
func (sv *SlotVec[T]) OccupancyBitmap() *roaring.Bitmap {
	// Indices run up to Len()-1, so a length of exactly 2^32 still fits.
	if uint64(sv.core.Len()) > math.MaxUint32+1 {
		panic("slotvec: occupancy bitmap limited to uint32 indices")
	}

	rb := roaring.New()
	idx, ok := sv.core.NextFilledFrom(0)
	for ok {
		rb.Add(uint32(idx))
		idx, ok = sv.core.NextFilledFrom(idx + 1)
	}
	return rb
}

// String renders the slots up to the high-water mark, holes as "_".
func (sv *SlotVec[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for idx := 0; idx < sv.core.Len(); idx++ {
		if idx > 0 {
			b.WriteString(", ")
		}
		if sv.core.HasElementAt(idx) {
			fmt.Fprintf(&b, "%v", *sv.core.Get(idx))
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte(']')
	return b.String()
}
