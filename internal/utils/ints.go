package utils

import (
	"slices"
	"sort"

	"golang.org/x/exp/constraints"
)

// SortedUnique sorts xs in place and returns the slice truncated to its
// unique values.
func SortedUnique[T constraints.Integer](xs []T) []T {
	if len(xs) < 2 {
		return xs
	}
	slices.Sort(xs)
	return slices.Compact(xs)
}

// FindInSlice attempts to find the target in increasing slice x.
// If not found, returns false and the index where the target would be inserted.
func FindInSlice(x []int, target int) (int, bool) {
	return sort.Find(len(x), func(i int) int {
		return target - x[i]
	})
}

// MapRange returns [f(begin), ..., f(end-1)].
func MapRange[S any](begin, end int, f func(int) S) []S {
	out := make([]S, end-begin)
	for i := begin; i < end; i++ {
		out[i-begin] = f(i)
	}
	return out
}
