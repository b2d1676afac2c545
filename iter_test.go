package slotvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestAll(t *testing.T) {
	sv := FromSlice([]string{"a", "b", "c", "d"})
	sv.Remove(1)

	gotIdx := []int{}
	gotVal := []string{}
	for idx, v := range sv.All() {
		gotIdx = append(gotIdx, idx)
		gotVal = append(gotVal, v)
	}
	assert.Equal(t, []int{0, 2, 3}, gotIdx)
	assert.Equal(t, []string{"a", "c", "d"}, gotVal)
}

func TestAllEarlyBreak(t *testing.T) {
	sv := FromSlice([]int{10, 11, 12, 13})

	got := []int{}
	for _, v := range sv.All() {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{10, 11}, got)
	assert.Equal(t, 4, sv.NumElements(), "breaking does not mutate")
}

func TestBackward(t *testing.T) {
	sv := FromSlice([]int{0, 1, 2, 3, 4})
	sv.Remove(0)
	sv.Remove(3)

	gotIdx := []int{}
	for idx := range sv.Backward() {
		gotIdx = append(gotIdx, idx)
	}
	assert.Equal(t, []int{4, 2, 1}, gotIdx)
}

func TestBackwardEmpty(t *testing.T) {
	sv := New[int]()
	for range sv.Backward() {
		t.Fatal("empty container must not yield")
	}

	// Holes only.
	sv.Push(1)
	sv.Remove(0)
	for range sv.Backward() {
		t.Fatal("hole-only container must not yield")
	}
}

func TestIndices(t *testing.T) {
	sv := FromSlice([]int{0, 1, 2})
	sv.Remove(1)

	got := []int{}
	for idx := range sv.Indices() {
		got = append(got, idx)
	}
	assert.Equal(t, []int{0, 2}, got)
}

func TestPtrsMutation(t *testing.T) {
	sv := FromSlice([]int{1, 2, 3, 4})
	sv.Remove(2)

	for _, p := range sv.Ptrs() {
		*p *= 10
	}

	assert.Equal(t, []int{10, 20, 40}, collectValues(sv))
}

func TestDrain(t *testing.T) {
	sv := FromSlice([]int{0, 1, 2, 3})
	sv.Remove(1)

	gotIdx := []int{}
	gotVal := []int{}
	for idx, v := range sv.Drain() {
		gotIdx = append(gotIdx, idx)
		gotVal = append(gotVal, v)
	}
	assert.Equal(t, []int{0, 2, 3}, gotIdx)
	assert.Equal(t, []int{0, 2, 3}, gotVal)
	assert.Equal(t, 0, sv.NumElements())
	assert.True(t, sv.IsEmpty())
}

func TestDrainEarlyBreak(t *testing.T) {
	sv := FromSlice([]int{0, 1, 2, 3})

	for range sv.Drain() {
		break
	}

	// The yielded element is gone; the rest stays.
	assert.Equal(t, 3, sv.NumElements())
	assert.False(t, sv.Has(0))
	assert.Equal(t, []int{1, 2, 3}, collectValues(sv))
}

func TestCollect(t *testing.T) {
	src := FromSlice([]int{1, 2, 3})
	src.Remove(0)

	sv := Collect(src.Values())
	assert.Equal(t, []int{2, 3}, collectValues(sv))
	assert.Equal(t, 2, sv.NumElements())
}

func TestExtend(t *testing.T) {
	sv := FromSlice([]int{1})
	other := FromSlice([]int{2, 3})

	sv.Extend(other.Values())
	assert.Equal(t, []int{1, 2, 3}, collectValues(sv))

	sv.ExtendFromSlice([]int{4, 5})
	assert.Equal(t, 5, sv.NumElements())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, collectValues(sv))
}

// TestConcurrentReads runs parallel readers over a shared container. Reads
// without a concurrent writer are safe; the race detector keeps us honest.
func TestConcurrentReads(t *testing.T) {
	sv := New[int]()
	for i := 0; i < 1000; i++ {
		sv.Push(i)
	}
	for i := 0; i < 1000; i += 7 {
		sv.Remove(i)
	}
	want := sv.NumElements()

	var g errgroup.Group
	for r := 0; r < 8; r++ {
		g.Go(func() error {
			count := 0
			sum := 0
			for idx, v := range sv.All() {
				require.Equal(t, idx, v)
				count++
				sum += v
			}
			require.Equal(t, want, count)
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
