package generics

import (
	"github.com/stretchr/testify/assert"
	"slices"
	"testing"
)

func TestKeysSlice(t *testing.T) {
	m := map[int]string{1: "1", 5: "5", 3: "3"}
	// Since the builtin map iterator in Go is deliberately non-deterministic, we
	// run it a bunch of times to show it is stably sorted.
	want := []int{1, 3, 5}
	for range 100 {
		got := KeysSlice(m)
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestArgMax(t *testing.T) {
	assert.Nil(t, ArgMax([]float64{}))
	assert.Equal(t, []int{1}, ArgMax([]float64{-1, 3, 2}))
	assert.Equal(t, []int{0, 2}, ArgMax([]int{7, -3, 7, 1}))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean([]float64{}))
	assert.InDelta(t, 2.0, Mean([]int{1, 2, 3}), 1e-9)
	assert.InDelta(t, 4.0/3.0, Mean([]float64{-10, 4, 10}), 1e-9)
}

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	// Check inserting and recovery.
	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	// Clones are independent.
	s4 := s.Clone()
	s4.Delete(7)
	assert.True(t, s.Has(7))
	assert.False(t, s4.Has(7))
}
