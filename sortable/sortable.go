package sortable

import (
	"github.com/amp-labs/amp-sort/compare"
)

type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Compare is the three-way form of a Sortable ordering: -1 if a is less than b,
// 1 if b is less than a, and 0 otherwise.
func Compare[T Sortable[T]](a, b T) int {
	switch {
	case a.LessThan(b):
		return -1
	case b.LessThan(a):
		return 1
	default:
		return 0
	}
}
