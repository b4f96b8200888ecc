// Package dataset generates, stores and loads the benchmark inputs: decimal
// integers and lowercase words, one per line, optionally compressed. Loaded
// data is held as fixed-width records ready for the sorting package.
package dataset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/amp-labs/amp-sort/compare"
	"github.com/amp-labs/amp-sort/sorting"
)

const (
	// NumberSize is the width of a number record: a little-endian int32.
	NumberSize = 4

	// DefaultWordWidth is the width of a word record. Shorter words are padded
	// with NUL bytes.
	DefaultWordWidth = 100
)

var (
	// ErrUnknownKind is returned for a kind name or value that is not numbers or words.
	ErrUnknownKind = errors.New("unknown dataset kind")

	// ErrRecordTooWide is returned when a word does not fit the record width.
	ErrRecordTooWide = errors.New("record too wide")

	// ErrTooFewRecords is returned when a prefix longer than the set is requested.
	ErrTooFewRecords = errors.New("too few records")

	// ErrMalformed is returned for a line that cannot be parsed as a record.
	ErrMalformed = errors.New("malformed dataset")

	// ErrInvalidParam is returned by the generators for a negative count or an unusable bound.
	ErrInvalidParam = errors.New("invalid parameter")
)

// Kind is the type of data a Set holds.
type Kind int

const (
	KindNumbers Kind = iota + 1
	KindWords
)

// Kinds returns every kind in menu order.
func Kinds() []Kind {
	return []Kind{KindNumbers, KindWords}
}

// ParseKind accepts "numbers" or "words" and their singular forms.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "numbers", "number", "ints", "int":
		return KindNumbers, nil
	case "words", "word", "strings", "string":
		return KindWords, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

func (k Kind) String() string {
	switch k {
	case KindNumbers:
		return "numbers"
	case KindWords:
		return "words"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindNumbers && k != KindWords {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText accepts anything ParseKind does.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// Set is a loaded dataset: Len records of Size bytes each, laid out back to back.
type Set interface {
	Kind() Kind

	// Records returns the backing bytes. Callers must not modify them; sort a
	// Prefix instead.
	Records() []byte

	Len() int
	Size() int

	// Comparator orders two records of this set.
	Comparator() sorting.Comparator

	// Prefix returns a fresh copy of the first n records.
	Prefix(n int) ([]byte, error)
}

type records struct {
	data []byte
	n    int
	size int
	cmp  sorting.Comparator
}

func (r *records) Records() []byte { return r.data[:r.n*r.size] }

func (r *records) Len() int { return r.n }

func (r *records) Size() int { return r.size }

func (r *records) Comparator() sorting.Comparator { return r.cmp }

func (r *records) Prefix(n int) ([]byte, error) {
	if n < 0 || n > r.n {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrTooFewRecords, n, r.n)
	}

	out := make([]byte, n*r.size)
	copy(out, r.data)

	return out, nil
}

func (r *records) at(i int) []byte {
	return r.data[i*r.size : (i+1)*r.size]
}

// Numbers is a Set of int32 values.
type Numbers struct {
	records
}

var _ Set = (*Numbers)(nil)

// NewNumbers encodes values as records.
func NewNumbers(values []int32) *Numbers {
	s := &Numbers{records{
		data: make([]byte, 0, len(values)*NumberSize),
		size: NumberSize,
		cmp:  compare.Int32,
	}}

	for _, v := range values {
		s.append(v)
	}

	return s
}

func (s *Numbers) append(v int32) {
	s.data = binary.LittleEndian.AppendUint32(s.data, uint32(v)) //nolint:gosec
	s.n++
}

func (s *Numbers) Kind() Kind { return KindNumbers }

// Value decodes record i.
func (s *Numbers) Value(i int) int32 {
	return int32(binary.LittleEndian.Uint32(s.at(i))) //nolint:gosec
}

// OrderBy returns a view of the same records ordered by cmp.
func (s *Numbers) OrderBy(cmp sorting.Comparator) *Numbers {
	c := *s
	c.cmp = cmp

	return &c
}

// Words is a Set of NUL-padded fixed-width words.
type Words struct {
	records
}

var _ Set = (*Words)(nil)

// NewWords encodes words as records of width bytes. A width of zero or less
// means DefaultWordWidth.
func NewWords(words []string, width int) (*Words, error) {
	s := newWords(len(words), width)

	for _, w := range words {
		if err := s.append(w); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func newWords(capacity, width int) *Words {
	if width <= 0 {
		width = DefaultWordWidth
	}

	return &Words{records{
		data: make([]byte, 0, capacity*width),
		size: width,
		cmp:  compare.Bytes,
	}}
}

func (s *Words) append(word string) error {
	if len(word) > s.size {
		return fmt.Errorf("%w: %q is %d bytes, records hold %d", ErrRecordTooWide, word, len(word), s.size)
	}

	s.data = append(s.data, word...)
	s.data = append(s.data, make([]byte, s.size-len(word))...)
	s.n++

	return nil
}

func (s *Words) Kind() Kind { return KindWords }

// Word decodes record i without its padding.
func (s *Words) Word(i int) string {
	return strings.TrimRight(string(s.at(i)), "\x00")
}

// OrderBy returns a view of the same records ordered by cmp, for example
// compare.Natural or a compare.Collated comparator.
func (s *Words) OrderBy(cmp sorting.Comparator) *Words {
	c := *s
	c.cmp = cmp

	return &c
}
