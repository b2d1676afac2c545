package core

import "math/bits"

// wordBits is the number of occupancy bits per word.
const wordBits = 64

// BitCore is a Core that stores elements and occupancy separately: one slice
// holding the element slots and one bit-packed slice holding a filled/empty
// flag per slot. Keeping the flags out of the element array makes occupancy
// scans touch 64 slots per loaded word, which is what the word-at-a-time
// search below relies on.
//
// Empty slots hold the zero value of T. RemoveAt and Clear re-zero vacated
// slots so that removed elements do not keep referenced memory alive.
type BitCore[T any] struct {
	elems  []T      // slot storage, len(elems) == cap
	words  []uint64 // one bit per slot, bit i of words[i/64]
	length int
}

var _ Core[int] = (*BitCore[int])(nil)

// NewBitCore creates an empty bit-tracked core. No memory is allocated until
// the first Realloc.
func NewBitCore[T any]() *BitCore[T] {
	return &BitCore[T]{}
}

// wordsFor returns the number of uint64 words needed for n occupancy bits.
func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

// Len implements Core.
func (c *BitCore[T]) Len() int { return c.length }

// SetLen implements Core.
func (c *BitCore[T]) SetLen(newLen int) { c.length = newLen }

// Cap implements Core.
func (c *BitCore[T]) Cap() int { return len(c.elems) }

// Realloc implements Core. Both buffers are resized independently; the
// occupancy words of the surviving prefix are copied verbatim and any added
// words start out zero (all-empty).
func (c *BitCore[T]) Realloc(newCap int) {
	if newCap == len(c.elems) {
		return
	}

	newElems := make([]T, newCap)
	copy(newElems, c.elems)
	c.elems = newElems

	newWords := make([]uint64, wordsFor(newCap))
	copy(newWords, c.words)
	c.words = newWords
}

// HasElementAt implements Core.
func (c *BitCore[T]) HasElementAt(idx int) bool {
	return c.words[idx/wordBits]>>(uint(idx)%wordBits)&1 != 0
}

// InsertAt implements Core.
func (c *BitCore[T]) InsertAt(idx int, elem T) {
	c.elems[idx] = elem
	c.words[idx/wordBits] |= 1 << (uint(idx) % wordBits)
}

// RemoveAt implements Core.
func (c *BitCore[T]) RemoveAt(idx int) T {
	c.words[idx/wordBits] &^= 1 << (uint(idx) % wordBits)

	elem := c.elems[idx]
	var zero T
	c.elems[idx] = zero
	return elem
}

// Get implements Core.
func (c *BitCore[T]) Get(idx int) *T { return &c.elems[idx] }

// Clear implements Core.
func (c *BitCore[T]) Clear() {
	var zero T
	for idx := 0; idx < c.length; idx++ {
		if c.HasElementAt(idx) {
			c.elems[idx] = zero
		}
	}
	for w := 0; w < wordsFor(c.length); w++ {
		c.words[w] = 0
	}
	c.length = 0
}

// NextFilledFrom implements Core.
//
// Two phases: the word containing idx is masked to drop bits below the start
// position and probed with a trailing-zero count; if it comes up empty, the
// remaining words are scanned whole, skipping zero words in one comparison
// each. Bits at indices ≥ length are zero by invariant, so no upper-bound
// masking is needed.
func (c *BitCore[T]) NextFilledFrom(idx int) (int, bool) {
	if idx >= c.length {
		return 0, false
	}

	wordIdx := idx / wordBits
	bitIdx := uint(idx) % wordBits

	// Mask out bits below the start bit. Example for bitIdx 5:
	//
	//	^(1<<5 - 1):   ...1111 0000
	//	word:          ...1010 0110
	//	masked:        ...1010 0000   (trailing zeros: 5)
	masked := c.words[wordIdx] &^ (1<<bitIdx - 1)
	if masked != 0 {
		return wordIdx*wordBits + bits.TrailingZeros64(masked), true
	}

	for wordIdx++; wordIdx < len(c.words); wordIdx++ {
		if word := c.words[wordIdx]; word != 0 {
			return wordIdx*wordBits + bits.TrailingZeros64(word), true
		}
	}

	return 0, false
}

// PrevFilledFrom implements Core. The mirror image of NextFilledFrom: bits
// above the start position are masked off and the highest remaining set bit
// is located with bits.Len64.
func (c *BitCore[T]) PrevFilledFrom(idx int) (int, bool) {
	if c.length == 0 {
		return 0, false
	}
	// Slots at indices ≥ length are empty, no point probing them.
	if idx >= c.length {
		idx = c.length - 1
	}

	wordIdx := idx / wordBits
	bitIdx := uint(idx) % wordBits

	// Keep bits [0, bitIdx], drop everything above.
	masked := c.words[wordIdx]
	if bitIdx != wordBits-1 {
		masked &= 1<<(bitIdx+1) - 1
	}
	if masked != 0 {
		return wordIdx*wordBits + bits.Len64(masked) - 1, true
	}

	for wordIdx--; wordIdx >= 0; wordIdx-- {
		if word := c.words[wordIdx]; word != 0 {
			return wordIdx*wordBits + bits.Len64(word) - 1, true
		}
	}

	return 0, false
}

// NextHoleFrom implements Core. Same scan as NextFilledFrom over the
// complement of the occupancy words. The complement of the final partial
// word has phantom set bits past the capacity, so a candidate is only
// reported while it is < Cap().
func (c *BitCore[T]) NextHoleFrom(idx int) (int, bool) {
	capacity := len(c.elems)
	if idx >= capacity {
		return 0, false
	}

	wordIdx := idx / wordBits
	bitIdx := uint(idx) % wordBits

	masked := ^c.words[wordIdx] &^ (1<<bitIdx - 1)
	for {
		if masked != 0 {
			hole := wordIdx*wordBits + bits.TrailingZeros64(masked)
			if hole >= capacity {
				return 0, false
			}
			return hole, true
		}
		wordIdx++
		if wordIdx >= len(c.words) {
			return 0, false
		}
		masked = ^c.words[wordIdx]
	}
}

// Swap implements Core. The occupancy flags are exchanged without branching:
// if exactly one of the two slots is filled, both bits must flip, so each
// word is XORed with a mask that is zero when the flags already agree. The
// element slots are exchanged unconditionally, which is well-defined even
// when one or both are empty (empty slots hold zero values).
func (c *BitCore[T]) Swap(a, b int) {
	swapBit := uint64(0)
	if c.HasElementAt(a) != c.HasElementAt(b) {
		swapBit = 1
	}

	c.words[a/wordBits] ^= swapBit << (uint(a) % wordBits)
	c.words[b/wordBits] ^= swapBit << (uint(b) % wordBits)

	c.elems[a], c.elems[b] = c.elems[b], c.elems[a]
}

// Clone implements Core.
func (c *BitCore[T]) Clone() Core[T] {
	out := &BitCore[T]{
		elems:  make([]T, len(c.elems)),
		words:  make([]uint64, len(c.words)),
		length: c.length,
	}
	copy(out.elems, c.elems)
	copy(out.words, c.words)
	return out
}
