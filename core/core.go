// Package core defines the storage contract behind a slot vector and its
// backend implementations.
//
// A Core is a fixed-capacity sequence of "slots". A slot is either empty or
// filled with exactly one element. The core tracks a length (the high-water
// mark of ever-reachable indices) separately from occupancy:
//
//	     0   1   2   3   4   5   6   7   8   9
//	   ┌───┬───┬───┬───┬───┬───┬───┬───┬───┬───┐
//	   │ a │ - │ b │ c │ - │ - │ d │ - │ - │ - │
//	   └───┴───┴───┴───┴───┴───┴───┴───┴───┴───┘
//	                                 ↑           ↑
//	                                len         cap
//
// Invariants (hold before and after every call):
//   - 0 ≤ len ≤ cap
//   - slots with index in [0, len) may be empty or filled
//   - slots with index in [len, cap) are always empty
//   - indices ≥ cap are out of range
//
// Most users never touch this package directly; the slotvec facade drives a
// Core and maintains the element count and growth policy on top of it.
package core

// Core is the capability contract a slot-vector backend must satisfy.
//
// Preconditions listed on each method are caller obligations. They are not
// validated and not reported as errors; the facade performs all user-facing
// checks before calling in. Implementations may hit an index panic on a
// violated precondition but must not be relied on to do so.
//
// Methods without a mutation in their name never change length, capacity or
// occupancy.
type Core[T any] interface {
	// Len returns the current length (highest ever-touched index + 1).
	Len() int

	// SetLen updates the length without touching any slot.
	//
	// Preconditions: newLen ≤ Cap(), and every slot in [newLen, Cap()) is
	// empty.
	SetLen(newLen int)

	// Cap returns the total number of slots.
	Cap() int

	// Realloc resizes the backing storage to hold exactly newCap slots.
	// Slot contents and occupancy for indices < min(oldCap, newCap) are
	// preserved; any added slots are empty. No over-allocation: growth
	// policy belongs to the caller.
	//
	// Precondition: newCap ≥ Len().
	Realloc(newCap int)

	// HasElementAt reports whether the slot at idx is filled.
	//
	// Precondition: idx < Cap().
	HasElementAt(idx int) bool

	// InsertAt writes elem into the slot at idx and marks it filled. It
	// does not adjust the length; that is the caller's job.
	//
	// Preconditions: idx < Cap(), slot at idx is empty.
	InsertAt(idx int, elem T)

	// RemoveAt marks the slot at idx empty and returns the element that
	// was stored there. The vacated slot holds the zero value afterwards
	// so the collector can reclaim anything the element referenced.
	//
	// Preconditions: idx < Cap(), slot at idx is filled.
	RemoveAt(idx int) T

	// Get returns a pointer to the element at idx. The pointer is
	// invalidated by Realloc, Swap and RemoveAt on that slot.
	//
	// Preconditions: idx < Cap(), slot at idx is filled.
	Get(idx int) *T

	// Clear empties every filled slot in [0, Len()) and resets the length
	// to 0. Capacity is unchanged.
	Clear()

	// NextFilledFrom returns the smallest filled index ≥ idx (and < Len()),
	// or false if there is none. If the slot at idx itself is filled, idx
	// is returned.
	//
	// Precondition: idx ≥ 0. Values ≥ Len() are allowed and yield false.
	NextFilledFrom(idx int) (int, bool)

	// PrevFilledFrom returns the largest filled index ≤ idx, or false if
	// there is none.
	//
	// Precondition: 0 ≤ idx < Cap().
	PrevFilledFrom(idx int) (int, bool)

	// NextHoleFrom returns the smallest empty index i with idx ≤ i < Cap(),
	// or false if there is none.
	//
	// Precondition: 0 ≤ idx ≤ Cap().
	NextHoleFrom(idx int) (int, bool)

	// Swap exchanges both the elements and the occupancy flags of the
	// slots at a and b. Either or both slots may be empty.
	//
	// Preconditions: a < Cap(), b < Cap().
	Swap(a, b int)

	// Clone returns a deep copy of the core, duplicating all slots
	// including empty ones. The clone's capacity is at least Cap().
	// Elements are copied by assignment.
	Clone() Core[T]
}

// NewDefault returns the default backend, fine in most situations: the
// bit-tracked core, whose packed occupancy words make slot scanning
// cache-friendly.
func NewDefault[T any]() Core[T] {
	return NewBitCore[T]()
}
