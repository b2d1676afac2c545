package core

// taggedSlot is one slot of a TaggedCore: the element inline with its own
// presence flag. The element is only meaningful while filled is true.
type taggedSlot[T any] struct {
	elem   T
	filled bool
}

// TaggedCore is a Core that stores each slot as a single tagged unit in one
// buffer. Per-slot access needs no bit math and no second buffer, at the
// price of less cache-dense occupancy scanning than BitCore: every probed
// slot drags the element's memory into cache alongside the flag.
//
// A reasonable choice for small element types where the extra flag byte is
// cheap and scanning is rare.
type TaggedCore[T any] struct {
	slots  []taggedSlot[T] // len(slots) == cap
	length int
}

var _ Core[int] = (*TaggedCore[int])(nil)

// NewTaggedCore creates an empty tagged-slot core. No memory is allocated
// until the first Realloc.
func NewTaggedCore[T any]() *TaggedCore[T] {
	return &TaggedCore[T]{}
}

// Len implements Core.
func (c *TaggedCore[T]) Len() int { return c.length }

// SetLen implements Core.
func (c *TaggedCore[T]) SetLen(newLen int) { c.length = newLen }

// Cap implements Core.
func (c *TaggedCore[T]) Cap() int { return len(c.slots) }

// Realloc implements Core. Old slots are copied verbatim into an
// exactly-sized new buffer; added slots start out empty. Growth policy
// (over-allocation) belongs to the facade, not here.
func (c *TaggedCore[T]) Realloc(newCap int) {
	if newCap == len(c.slots) {
		return
	}
	newSlots := make([]taggedSlot[T], newCap)
	copy(newSlots, c.slots)
	c.slots = newSlots
}

// HasElementAt implements Core.
func (c *TaggedCore[T]) HasElementAt(idx int) bool { return c.slots[idx].filled }

// InsertAt implements Core.
func (c *TaggedCore[T]) InsertAt(idx int, elem T) {
	c.slots[idx] = taggedSlot[T]{elem: elem, filled: true}
}

// RemoveAt implements Core.
func (c *TaggedCore[T]) RemoveAt(idx int) T {
	elem := c.slots[idx].elem
	c.slots[idx] = taggedSlot[T]{}
	return elem
}

// Get implements Core.
func (c *TaggedCore[T]) Get(idx int) *T { return &c.slots[idx].elem }

// Clear implements Core.
func (c *TaggedCore[T]) Clear() {
	for idx := 0; idx < c.length; idx++ {
		c.slots[idx] = taggedSlot[T]{}
	}
	c.length = 0
}

// NextFilledFrom implements Core.
func (c *TaggedCore[T]) NextFilledFrom(idx int) (int, bool) {
	for ; idx < c.length; idx++ {
		if c.slots[idx].filled {
			return idx, true
		}
	}
	return 0, false
}

// PrevFilledFrom implements Core.
func (c *TaggedCore[T]) PrevFilledFrom(idx int) (int, bool) {
	if idx >= c.length {
		idx = c.length - 1
	}
	for ; idx >= 0; idx-- {
		if c.slots[idx].filled {
			return idx, true
		}
	}
	return 0, false
}

// NextHoleFrom implements Core.
func (c *TaggedCore[T]) NextHoleFrom(idx int) (int, bool) {
	for ; idx < len(c.slots); idx++ {
		if !c.slots[idx].filled {
			return idx, true
		}
	}
	return 0, false
}

// Swap implements Core.
func (c *TaggedCore[T]) Swap(a, b int) {
	c.slots[a], c.slots[b] = c.slots[b], c.slots[a]
}

// Clone implements Core.
func (c *TaggedCore[T]) Clone() Core[T] {
	out := &TaggedCore[T]{
		slots:  make([]taggedSlot[T], len(c.slots)),
		length: c.length,
	}
	copy(out.slots, c.slots)
	return out
}
