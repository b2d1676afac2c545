package slotvec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteWriter(t *testing.T) {
	sv := New[byte]()
	w := NewByteWriter(sv)

	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	_, err = fmt.Fprintf(w, "world %d", 42)
	require.NoError(t, err)

	assert.Equal(t, []byte("hello world 42"), collectValues(sv))
}

func TestByteWriterAfterRemoval(t *testing.T) {
	sv := New[byte]()
	sv.Push('x')
	sv.Push('y')
	sv.Remove(0)

	// Writes append above the high-water mark; holes stay put.
	w := NewByteWriter(sv)
	_, err := w.Write([]byte("z"))
	require.NoError(t, err)

	assert.Equal(t, []byte("yz"), collectValues(sv))
	assert.False(t, sv.Has(0))
	assert.Equal(t, 3, sv.NextPushIndex())
}
