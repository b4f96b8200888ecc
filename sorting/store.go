package sorting

import (
	"errors"
	"fmt"
	"reflect"
)

// store is a sequence of records the algorithms reorder. S is the concrete store
// type itself, so scratch buffers have the same representation as the sequence and
// records can be moved between the two without conversion.
type store[S any] interface {
	// Len returns the number of records.
	Len() int

	// Compare orders record i of this store against record j of other.
	Compare(i int, other S, j int) int

	// Move copies record j of src over record i of this store.
	Move(i int, src S, j int)

	// Scratch returns an n-record buffer and the func that gives its memory back.
	Scratch(n int) (S, func(), error)
}

// Comparator orders two records: negative if a sorts before b, zero if they are
// equivalent and positive if a sorts after b. Each argument is exactly one record
// wide and must not be retained or modified.
type Comparator func(a, b []byte) int

// Option configures a single sort call.
type Option func(*options)

type options struct {
	alloc Allocator
}

// WithAllocator routes scratch-buffer accounting through a. A nil a is ignored.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

func getOptions(opts []Option) *options {
	o := &options{alloc: Unbounded}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// records is the byte-level store: n records of size bytes in one slice.
type records struct {
	data  []byte
	n     int
	size  int
	cmp   Comparator
	alloc Allocator
}

func newRecords(seq []byte, n, size int, cmp Comparator, opts []Option) (*records, error) {
	switch {
	case seq == nil:
		return nil, ErrNilSequence
	case size <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	case n < 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	case n > len(seq)/size:
		return nil, fmt.Errorf("%w: %d records of %d bytes need %d bytes, have %d",
			ErrShortSequence, n, size, n*size, len(seq))
	case cmp == nil:
		return nil, ErrNilComparator
	}

	return &records{
		data:  seq[:n*size],
		n:     n,
		size:  size,
		cmp:   cmp,
		alloc: getOptions(opts).alloc,
	}, nil
}

func (r *records) at(i int) []byte {
	off := i * r.size

	return r.data[off : off+r.size : off+r.size]
}

func (r *records) Len() int { return r.n }

func (r *records) Compare(i int, other *records, j int) int {
	return r.cmp(r.at(i), other.at(j))
}

func (r *records) Move(i int, src *records, j int) {
	copy(r.at(i), src.at(j))
}

func (r *records) Scratch(n int) (*records, func(), error) {
	bytes := n * r.size

	if err := acquire(r.alloc, bytes); err != nil {
		return nil, nil, err
	}

	buf := &records{
		data:  make([]byte, bytes),
		n:     n,
		size:  r.size,
		cmp:   r.cmp,
		alloc: r.alloc,
	}

	return buf, func() { r.alloc.Release(bytes) }, nil
}

// slice is the typed store used by SortSlice.
type slice[T any] struct {
	items []T
	cmp   func(a, b T) int
	alloc Allocator
	width int
}

func newSlice[T any](items []T, cmp func(a, b T) int, opts []Option) *slice[T] {
	return &slice[T]{
		items: items,
		cmp:   cmp,
		alloc: getOptions(opts).alloc,
		width: int(reflect.TypeFor[T]().Size()),
	}
}

func (s *slice[T]) Len() int { return len(s.items) }

func (s *slice[T]) Compare(i int, other *slice[T], j int) int {
	return s.cmp(s.items[i], other.items[j])
}

func (s *slice[T]) Move(i int, src *slice[T], j int) {
	s.items[i] = src.items[j]
}

func (s *slice[T]) Scratch(n int) (*slice[T], func(), error) {
	bytes := n * s.width

	if err := acquire(s.alloc, bytes); err != nil {
		return nil, nil, err
	}

	buf := &slice[T]{
		items: make([]T, n),
		cmp:   s.cmp,
		alloc: s.alloc,
		width: s.width,
	}

	return buf, func() { s.alloc.Release(bytes) }, nil
}

// acquire makes sure every refusal, whatever Allocator produced it, is
// recognizable as ErrAllocation.
func acquire(alloc Allocator, bytes int) error {
	err := alloc.Acquire(bytes)
	if err == nil || errors.Is(err, ErrAllocation) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrAllocation, err)
}

// swap exchanges records i and j through the one-record buffer tmp.
func swap[S store[S]](s S, tmp S, i, j int) {
	tmp.Move(0, s, i)
	s.Move(i, s, j)
	s.Move(j, tmp, 0)
}
