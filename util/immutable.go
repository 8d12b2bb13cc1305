package util

import (
	"cmp"
	"iter"
	"slices"

	"github.com/benbjohnson/immutable"
)

// IDHasher hashes the dense uint32 ids of the IR
func IDHasher[K ~uint32]() immutable.Hasher[K] {
	return immutable.NewHasher(K(0))
}

// SortedEntries iterates over m in ascending key order, as opposed to
// m.Iterator, which follows hash order
func SortedEntries[K cmp.Ordered, V any](m *immutable.Map[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		keys := make([]K, 0, m.Len())
		for it := m.Iterator(); !it.Done(); {
			k, _, _ := it.Next()
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			v, _ := m.Get(k)
			if !yield(k, v) {
				return
			}
		}
	}
}
