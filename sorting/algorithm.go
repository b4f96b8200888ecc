package sorting

import (
	"fmt"
	"strings"
)

// Algorithm names one of the sorting strategies in this package.
type Algorithm int

const (
	BubbleSort Algorithm = iota + 1
	SelectionSort
	InsertionSort
	MergeSort
	QuickSort
	ShellSort
)

type algorithmInfo struct {
	name       string
	key        string
	stable     bool
	quadratic  bool
	complexity string
}

var algorithmTable = map[Algorithm]algorithmInfo{ //nolint:gochecknoglobals
	BubbleSort:    {"Bubble Sort", "bubble", true, true, "O(n²)"},
	SelectionSort: {"Selection Sort", "selection", false, true, "O(n²)"},
	InsertionSort: {"Insertion Sort", "insertion", true, true, "O(n²)"},
	MergeSort:     {"Merge Sort", "merge", true, false, "O(n log n)"},
	QuickSort:     {"Quick Sort", "quick", false, false, "O(n log n) average, O(n²) worst"},
	ShellSort:     {"Shell Sort", "shell", false, false, "O(n (log n)²) for Knuth gaps"},
}

// Algorithms returns every algorithm in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{BubbleSort, SelectionSort, InsertionSort, MergeSort, QuickSort, ShellSort}
}

// ParseAlgorithm accepts the short key ("quick"), the display name ("Quick Sort")
// or a hyphenated form ("quick-sort"), ignoring case and surrounding space.
func ParseAlgorithm(name string) (Algorithm, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	norm = strings.TrimSuffix(norm, " sort")

	for _, alg := range Algorithms() {
		if algorithmTable[alg].key == norm {
			return alg, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Valid reports whether a is one of the known algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithmTable[a]

	return ok
}

// String returns the display name, e.g. "Merge Sort".
func (a Algorithm) String() string {
	if info, ok := algorithmTable[a]; ok {
		return info.name
	}

	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Key returns the short lowercase name, e.g. "merge".
func (a Algorithm) Key() string {
	return algorithmTable[a].key
}

// Stable reports whether the algorithm keeps equal records in input order.
func (a Algorithm) Stable() bool {
	return algorithmTable[a].stable
}

// Quadratic reports whether the algorithm is O(n²) on typical input.
func (a Algorithm) Quadratic() bool {
	return algorithmTable[a].quadratic
}

// Complexity describes the time complexity.
func (a Algorithm) Complexity() string {
	return algorithmTable[a].complexity
}

// MarshalText encodes the algorithm as its short key.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(a))
	}

	return []byte(a.Key()), nil
}

// UnmarshalText accepts anything ParseAlgorithm does.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}

	*a = alg

	return nil
}

// Sort sorts the first n records of seq with the named algorithm.
// See the package documentation for the shared contract.
func Sort(alg Algorithm, seq []byte, n, size int, cmp Comparator, opts ...Option) error {
	if !alg.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}

	recs, err := newRecords(seq, n, size, cmp, opts)
	if err != nil {
		return err
	}

	return run(alg, recs)
}

// SortSlice sorts items in place with the named algorithm and a typed comparator.
// A nil or empty slice is a no-op. Scratch memory is accounted at the in-memory
// size of T per record.
func SortSlice[T any](alg Algorithm, items []T, cmp func(a, b T) int, opts ...Option) error {
	if !alg.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}

	if cmp == nil {
		return ErrNilComparator
	}

	return run(alg, newSlice(items, cmp, opts))
}

func run[S store[S]](alg Algorithm, s S) error {
	switch alg {
	case BubbleSort:
		return bubbleSort(s)
	case SelectionSort:
		return selectionSort(s)
	case InsertionSort:
		return insertionSort(s)
	case MergeSort:
		return mergeSort(s)
	case QuickSort:
		return quickSort(s)
	case ShellSort:
		return shellSort(s)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}
}
