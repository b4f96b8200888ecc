package bench

import (
	"time"

	"github.com/amp-labs/amp-sort/dataset"
	"github.com/amp-labs/amp-sort/sorting"
	"github.com/google/uuid"
)

const bytesPerMB = 1024 * 1024

// Status is the outcome of one benchmark case.
type Status string

const (
	StatusOK               Status = "ok"
	StatusNotSorted        Status = "not sorted"
	StatusNotPermutation   Status = "not a permutation"
	StatusAllocationFailed Status = "allocation failed"
	StatusFailed           Status = "failed"
	StatusSkipped          Status = "skipped"
)

// Result is the measurement of one case.
type Result struct {
	ID          uuid.UUID         `json:"id"                yaml:"id"`
	Algorithm   sorting.Algorithm `json:"algorithm"         yaml:"algorithm"`
	Dataset     dataset.Kind      `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	Count       int               `json:"count"             yaml:"count"`
	Started     time.Time         `json:"started"           yaml:"started"`
	Wall        time.Duration     `json:"wall"              yaml:"wall"`
	CPU         time.Duration     `json:"cpu"               yaml:"cpu"`
	DataBytes   int64             `json:"data_bytes"        yaml:"data_bytes"`
	ScratchPeak int64             `json:"scratch_peak"      yaml:"scratch_peak"`
	Comparisons int64             `json:"comparisons"       yaml:"comparisons"`
	Status      Status            `json:"status"            yaml:"status"`
	Digest      string            `json:"digest,omitempty"  yaml:"digest,omitempty"`
	Error       string            `json:"error,omitempty"   yaml:"error,omitempty"`

	err error
}

// OK reports whether the case produced a sorted permutation of its input.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// DataMB is the size of the sorted records in MiB.
func (r Result) DataMB() float64 {
	return float64(r.DataBytes) / bytesPerMB
}

// ScratchMB is the scratch-memory peak in MiB.
func (r Result) ScratchMB() float64 {
	return float64(r.ScratchPeak) / bytesPerMB
}

// Case is one algorithm applied to the first Count records of a Set.
type Case struct {
	Algorithm sorting.Algorithm
	Set       dataset.Set
	Count     int
}

// Sizes returns the standard record counts, smallest first.
func Sizes() []int {
	return []int{10_000, 50_000, 100_000, 250_000, 500_000, 1_000_000, 1_500_000, 2_000_000}
}

// Plan returns one case per algorithm and count, algorithms outermost.
func Plan(set dataset.Set, algorithms []sorting.Algorithm, counts ...int) []Case {
	cases := make([]Case, 0, len(algorithms)*len(counts))

	for _, alg := range algorithms {
		for _, n := range counts {
			cases = append(cases, Case{Algorithm: alg, Set: set, Count: n})
		}
	}

	return cases
}
