package compare

import (
	"go.uber.org/atomic"
)

// Reverse returns a comparator that orders the opposite way to cmp.
func Reverse[T any](cmp func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return cmp(b, a)
	}
}

// Counter wraps a comparator and counts how many times it is called.
// It is safe for concurrent use.
type Counter[T any] struct {
	cmp   func(a, b T) int
	calls atomic.Int64
}

// Counting wraps cmp in a Counter. Pass Counter.Compare where the comparator
// was expected.
func Counting[T any](cmp func(a, b T) int) *Counter[T] {
	return &Counter[T]{cmp: cmp}
}

// Compare calls the wrapped comparator.
func (c *Counter[T]) Compare(a, b T) int {
	c.calls.Inc()

	return c.cmp(a, b)
}

// Calls returns the number of comparisons made since creation or the last Reset.
func (c *Counter[T]) Calls() int64 {
	return c.calls.Load()
}

// Reset zeroes the call count.
func (c *Counter[T]) Reset() {
	c.calls.Store(0)
}
