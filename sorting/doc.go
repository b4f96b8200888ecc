// Package sorting implements six comparison sorts over type-erased sequences of
// fixed-width records: bubble, selection, insertion, merge, quick and shell sort.
//
// # Overview
//
// A sequence is a byte slice holding n records of size bytes each, stored back to
// back. The algorithms never interpret record contents; ordering comes entirely from
// a caller-supplied [Comparator]. Records are repositioned by copying bytes, so after
// a successful call the sequence is a permutation of its input that is non-decreasing
// under the comparator.
//
//	seq := make([]byte, 4*len(values))
//	for i, v := range values {
//	    binary.LittleEndian.PutUint32(seq[i*4:], uint32(v))
//	}
//
//	err := sorting.Merge(seq, len(values), 4, compare.Int32)
//
// Every algorithm shares one contract:
//   - n == 0 and n == 1 are no-ops.
//   - A nil sequence, a non-positive record size, a negative count, a sequence shorter
//     than n*size or a nil comparator are precondition violations. They are reported
//     before anything is mutated.
//   - Scratch memory is acquired through an [Allocator] and released before the call
//     returns, on every path. If the allocator refuses, the error wraps [ErrAllocation]
//     and the sequence is left partially sorted.
//   - The comparator is trusted. An inconsistent comparator produces an unspecified
//     order, never an error.
//
// # Typed slices
//
// [SortSlice] runs the same algorithm bodies over a []T with a typed comparator, which
// is the natural form for Go callers that already have typed data.
//
// # Choosing an algorithm
//
// Nothing here picks an algorithm automatically. [Algorithm] is a closed set of named
// strategies, parsed with [ParseAlgorithm] and dispatched with [Sort]. Only bubble,
// insertion and merge sort are stable. Quick sort always pivots on the last record, so
// already-ordered and reverse-ordered input is its O(n²) worst case.
//
// # Thread Safety
//
// Calls are synchronous and single-threaded. The sequence must not be touched by other
// goroutines while a sort is running. A [Budget] may be shared between concurrent
// sorts of different sequences.
package sorting
