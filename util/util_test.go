package util

import (
	"maps"
	"slices"
	"testing"

	"github.com/benbjohnson/immutable"
	"github.com/stretchr/testify/assert"
)

func TestSortedUniq(t *testing.T) {
	in := []uint32{5, 1, 5, 3, 1}
	assert.Equal(t, []uint32{1, 3, 5}, SortedUniq(in))
	assert.Equal(t, []uint32{5, 1, 5, 3, 1}, in, "the input is not modified")
	assert.Nil(t, SortedUniq[int](nil))
}

func TestSortedEntries(t *testing.T) {
	m := immutable.NewMap[uint32, string](IDHasher[uint32]())
	for _, k := range []uint32{9, 2, 40, 0} {
		m = m.Set(k, "v")
	}

	var keys []uint32
	for k := range SortedEntries(m) {
		keys = append(keys, k)
	}
	assert.Equal(t, []uint32{0, 2, 9, 40}, keys)
	assert.Empty(t, maps.Collect(SortedEntries[uint32, string](nil)))
}

func TestMapIter(t *testing.T) {
	doubled := slices.Collect(MapIter(slices.Values([]int{1, 2, 3}), func(i int) int { return i * 2 }))
	assert.Equal(t, []int{2, 4, 6}, doubled)

	s := SetFromSeq(slices.Values([]string{"a", "b", "a"}), 3)
	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Contains("b"))
}
