package sorting

import (
	"fmt"

	"go.uber.org/atomic"
)

// Allocator accounts for the scratch memory an algorithm needs. Acquire is called
// before a scratch buffer is created and Release once it is no longer needed, on
// every exit path. An Acquire error aborts the sort and is returned to the caller
// wrapped in ErrAllocation.
//
// The Go runtime does not report heap exhaustion as an error, so an Allocator is the
// place where a memory ceiling becomes a recoverable failure.
type Allocator interface {
	Acquire(bytes int) error
	Release(bytes int)
}

// Unbounded is an Allocator that never refuses.
var Unbounded Allocator = unbounded{} //nolint:gochecknoglobals

type unbounded struct{}

func (unbounded) Acquire(int) error { return nil }

func (unbounded) Release(int) {}

// Budget is an Allocator with an upper bound on the scratch bytes held at any one
// time. It also keeps statistics that are useful when measuring an algorithm's
// auxiliary memory: bytes currently held, the peak, and how many acquisitions and
// refusals happened.
//
// A zero Budget is unlimited. Budget is safe for concurrent use.
type Budget struct {
	limit int64

	inUse        atomic.Int64
	peak         atomic.Int64
	acquisitions atomic.Int64
	refusals     atomic.Int64
}

// Compile-time check that Budget implements Allocator.
var _ Allocator = (*Budget)(nil)

// NewBudget returns a Budget that refuses to hold more than limit bytes.
// A limit of zero or less means no limit.
func NewBudget(limit int64) *Budget {
	return &Budget{limit: limit}
}

// Acquire reserves bytes, or fails with ErrAllocation if that would exceed the limit.
func (b *Budget) Acquire(bytes int) error {
	want := int64(bytes)

	for {
		cur := b.inUse.Load()
		next := cur + want

		if b.limit > 0 && next > b.limit {
			b.refusals.Inc()

			return fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrAllocation, want, cur, b.limit)
		}

		if b.inUse.CompareAndSwap(cur, next) {
			b.acquisitions.Inc()
			b.raisePeak(next)

			return nil
		}
	}
}

// Release returns bytes previously acquired.
func (b *Budget) Release(bytes int) {
	b.inUse.Sub(int64(bytes))
}

func (b *Budget) raisePeak(v int64) {
	for {
		p := b.peak.Load()
		if v <= p || b.peak.CompareAndSwap(p, v) {
			return
		}
	}
}

// Limit returns the configured limit (zero or less means unlimited).
func (b *Budget) Limit() int64 { return b.limit }

// InUse returns the number of bytes currently held.
func (b *Budget) InUse() int64 { return b.inUse.Load() }

// Peak returns the largest number of bytes held at once.
func (b *Budget) Peak() int64 { return b.peak.Load() }

// Acquisitions returns the number of successful Acquire calls.
func (b *Budget) Acquisitions() int64 { return b.acquisitions.Load() }

// Refusals returns the number of Acquire calls that failed.
func (b *Budget) Refusals() int64 { return b.refusals.Load() }
