// Package sortable provides wrapper types for primitive types that implement
// the Sortable interface, and [Compare], which turns any Sortable into the
// three-way comparator expected by [github.com/amp-labs/amp-sort/sorting.SortSlice].
//
// # Usage
//
//	items := []sortable.Int{42, 10, 25}
//	err := sorting.SortSlice(sorting.MergeSort, items, sortable.Compare[sortable.Int])
//	// items is now 10, 25, 42
//
// # Creating Custom Sortable Types
//
// Implement Equals and LessThan consistently: for any a and b exactly one of
// a.LessThan(b), b.LessThan(a) and a.Equals(b) should hold.
//
//	type Job struct {
//	    Priority int
//	    Name     string
//	}
//
//	func (j Job) Equals(other Job) bool {
//	    return j.Priority == other.Priority && j.Name == other.Name
//	}
//
//	func (j Job) LessThan(other Job) bool {
//	    if j.Priority != other.Priority {
//	        return j.Priority < other.Priority
//	    }
//	    return j.Name < other.Name
//	}
package sortable
