package util

import (
	"cmp"
	"iter"
	"slices"
	"sort"

	"github.com/hashicorp/go-set/v3"
	xset "github.com/xtgo/set"
)

func MapIter[A, B any](iter iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range iter {
			if !yield(f(v)) {
				return
			}
		}
	}
}

func SetFromSeq[V comparable](s iter.Seq[V], size int) *set.Set[V] {
	newSet := set.New[V](size)
	for item := range s {
		newSet.Insert(item)
	}
	return newSet
}

type sortable[A cmp.Ordered] []A

func (s sortable[A]) Len() int           { return len(s) }
func (s sortable[A]) Less(i, j int) bool { return s[i] < s[j] }
func (s sortable[A]) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

var _ sort.Interface = sortable[int]{}

// SortedUniq returns a sorted copy of s without duplicates. It returns nil
// for an empty s.
func SortedUniq[A cmp.Ordered](s []A) []A {
	if len(s) == 0 {
		return nil
	}
	sorted := slices.Clone(s)
	slices.Sort(sorted)
	n := xset.Uniq(sortable[A](sorted))
	return sorted[:n]
}
