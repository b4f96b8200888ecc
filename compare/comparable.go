// Package compare provides equality and ordering helpers: the Comparable
// interface, three-way comparators over fixed-width binary records, and
// generic wrappers that reverse or count any comparator.
package compare

// Comparable is a generic interface for types that can compare themselves for equality.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}
