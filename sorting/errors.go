package sorting

import "errors"

var (
	// ErrNilSequence is returned when the sequence is nil.
	ErrNilSequence = errors.New("nil sequence")

	// ErrInvalidSize is returned when the record size is not positive.
	ErrInvalidSize = errors.New("invalid record size")

	// ErrInvalidCount is returned when the record count is negative.
	ErrInvalidCount = errors.New("invalid record count")

	// ErrShortSequence is returned when the sequence holds fewer than n*size bytes.
	ErrShortSequence = errors.New("sequence shorter than n records")

	// ErrNilComparator is returned when no comparator is given.
	ErrNilComparator = errors.New("nil comparator")

	// ErrUnknownAlgorithm is returned for an Algorithm outside the known set.
	ErrUnknownAlgorithm = errors.New("unknown sorting algorithm")

	// ErrAllocation is returned when a scratch buffer cannot be obtained.
	// The sequence is partially sorted when this is returned.
	ErrAllocation = errors.New("scratch allocation failed")
)
