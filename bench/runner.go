// Package bench times sorting algorithms over datasets and verifies the output.
//
// Each case sorts a fresh copy of the first Count records, with a counting
// comparator and a fresh scratch-memory budget. The result records wall and
// process CPU time, comparisons, the scratch peak and whether the output is a
// sorted permutation of the input.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-sort/compare"
	amperrors "github.com/amp-labs/amp-sort/errors"
	"github.com/amp-labs/amp-sort/hashing"
	"github.com/amp-labs/amp-sort/logger"
	"github.com/amp-labs/amp-sort/sorting"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultLargeThreshold is the record count above which quadratic algorithms
// need confirmation.
const DefaultLargeThreshold = 100_000

const tracerName = "github.com/amp-labs/amp-sort/bench"

// ErrCaseFailed wraps the error of every case that did not produce a sorted
// permutation of its input.
var ErrCaseFailed = errors.New("benchmark case failed")

// Runner executes benchmark cases. The zero value runs one case at a time with
// no memory limit, skips large quadratic cases and records metrics in the
// default Prometheus registry.
type Runner struct {
	// Workers is how many cases run at once. Values below one mean one. More
	// than one shortens a run but the cases then compete for CPU, and CPU time
	// is measured for the whole process.
	Workers int

	// MemoryLimit caps the scratch bytes one sort may hold; zero or less is no cap.
	MemoryLimit int64

	// LargeThreshold overrides DefaultLargeThreshold when positive.
	LargeThreshold int

	// Confirm is asked before a quadratic algorithm runs on more than
	// LargeThreshold records. A nil Confirm declines.
	Confirm func(ctx context.Context, c Case) bool

	// Tracer overrides the global OpenTelemetry tracer.
	Tracer trace.Tracer

	// Metrics overrides the default metrics.
	Metrics *Metrics
}

func (r *Runner) workers() int {
	return max(r.Workers, 1)
}

func (r *Runner) threshold() int {
	if r.LargeThreshold > 0 {
		return r.LargeThreshold
	}

	return DefaultLargeThreshold
}

func (r *Runner) tracer() trace.Tracer { //nolint:ireturn
	if r.Tracer != nil {
		return r.Tracer
	}

	return otel.Tracer(tracerName)
}

func (r *Runner) metrics() *Metrics {
	if r.Metrics != nil {
		return r.Metrics
	}

	return defaultMetrics.Get()
}

// Run executes cases and returns one Result per case, in order. Cases that do
// not produce a sorted permutation are reported both in their Result and in
// the returned error. Canceling ctx stops cases that have not started; a sort
// already running finishes.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Result, error) {
	runId := uuid.NewString()
	ctx = logger.WithRunId(ctx, runId)

	ctx, span := r.tracer().Start(ctx, "bench.Run", trace.WithAttributes(
		attribute.String("run.id", runId),
		attribute.Int("run.cases", len(cases)),
		attribute.Int("run.workers", r.workers()),
	))
	defer span.End()

	pool := pond.NewResultPool[Result](r.workers(), pond.WithContext(ctx))
	defer pool.StopAndWait()

	results := make([]Result, len(cases))
	tasks := make([]pond.Result[Result], len(cases))

	// Every confirmation is asked before the first case starts, so prompts
	// never interleave with running cases.
	runnable := make([]bool, len(cases))

	for i, c := range cases {
		switch {
		case c.Set == nil:
			results[i] = skipped(c, "no dataset")
		case r.skip(ctx, c):
			results[i] = skipped(c, fmt.Sprintf("not confirmed for more than %d records", r.threshold()))
		default:
			runnable[i] = true
		}
	}

	for i, c := range cases {
		if !runnable[i] {
			continue
		}

		tasks[i] = pool.Submit(func() Result {
			return r.runCase(ctx, c)
		})
	}

	var errs amperrors.Collection

	for i, task := range tasks {
		if task == nil {
			r.metrics().observe(results[i])

			continue
		}

		res, err := task.Wait()
		if err != nil {
			res = skipped(cases[i], err.Error())
		}

		results[i] = res
		r.metrics().observe(res)

		if !res.OK() && res.Status != StatusSkipped {
			errs.Add(logger.AnnotateError(caseError(res),
				"algorithm", res.Algorithm.Key(), "count", res.Count, "dataset", res.Dataset.String()))
		}
	}

	if err := errs.GetError(); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("%d cases failed", errs.Len()))

		return results, err
	}

	return results, ctx.Err()
}

func caseError(res Result) error {
	if res.err != nil {
		return fmt.Errorf("%w: %s on %d %s: %w", ErrCaseFailed, res.Algorithm, res.Count, res.Dataset, res.err)
	}

	return fmt.Errorf("%w: %s on %d %s: %s", ErrCaseFailed, res.Algorithm, res.Count, res.Dataset, res.Status)
}

func (r *Runner) skip(ctx context.Context, c Case) bool {
	if !c.Algorithm.Quadratic() || c.Count <= r.threshold() {
		return false
	}

	return r.Confirm == nil || !r.Confirm(ctx, c)
}

func skipped(c Case, reason string) Result {
	res := Result{
		ID:        uuid.New(),
		Algorithm: c.Algorithm,
		Count:     c.Count,
		Status:    StatusSkipped,
		Error:     reason,
	}

	if c.Set != nil {
		res.Dataset = c.Set.Kind()
	}

	return res
}

func (r *Runner) runCase(ctx context.Context, c Case) Result {
	res := Result{
		ID:        uuid.New(),
		Algorithm: c.Algorithm,
		Dataset:   c.Set.Kind(),
		Count:     c.Count,
		Started:   time.Now(),
		DataBytes: int64(c.Count) * int64(c.Set.Size()),
	}

	ctx = logger.With(ctx, "case", res.ID.String(), "algorithm", c.Algorithm.Key(),
		"dataset", res.Dataset.String(), "count", c.Count)

	ctx, span := r.tracer().Start(ctx, "sort "+c.Algorithm.Key(), trace.WithAttributes(
		attribute.String("sort.algorithm", c.Algorithm.Key()),
		attribute.String("sort.dataset", res.Dataset.String()),
		attribute.Int("sort.count", c.Count),
		attribute.Int("sort.record_size", c.Set.Size()),
	))
	defer span.End()

	log := logger.Get(ctx)

	seq, err := c.Set.Prefix(c.Count)
	if err != nil {
		return failed(span, res, StatusFailed, err)
	}

	n, size := c.Count, c.Set.Size()
	cmp := c.Set.Comparator()
	before := hashing.Records(seq, n, size)

	counter := compare.Counting[[]byte](cmp)
	budget := sorting.NewBudget(r.MemoryLimit)

	log.Debug("Sorting")

	cpuStart, cpuErr := processCPUTime()
	start := time.Now()

	err = sorting.Sort(c.Algorithm, seq, n, size, counter.Compare, sorting.WithAllocator(budget))

	res.Wall = time.Since(start)

	if cpuErr == nil {
		if cpuEnd, err := processCPUTime(); err == nil {
			res.CPU = cpuEnd - cpuStart
		}
	}

	res.Comparisons = counter.Calls()
	res.ScratchPeak = budget.Peak()

	span.SetAttributes(
		attribute.Int64("sort.comparisons", res.Comparisons),
		attribute.Int64("sort.scratch_peak_bytes", res.ScratchPeak),
		attribute.Int64("sort.wall_ns", res.Wall.Nanoseconds()),
	)

	switch {
	case errors.Is(err, sorting.ErrAllocation):
		return failed(span, res, StatusAllocationFailed, err)
	case err != nil:
		return failed(span, res, StatusFailed, err)
	case !isSorted(seq, n, size, cmp):
		return failed(span, res, StatusNotSorted, nil)
	case hashing.Records(seq, n, size) != before:
		return failed(span, res, StatusNotPermutation, nil)
	}

	res.Status = StatusOK
	res.Digest = fmt.Sprintf("%016x", hashing.Sequence(seq, n, size))

	log.Info("Sorted", "wall", res.Wall, "cpu", res.CPU, "comparisons", res.Comparisons,
		"scratch_peak", res.ScratchPeak)

	return res
}

func failed(span trace.Span, res Result, status Status, err error) Result {
	res.Status = status

	if err != nil {
		res.err = err
		res.Error = err.Error()
		span.RecordError(err)
	}

	span.SetStatus(codes.Error, string(status))

	return res
}

func isSorted(seq []byte, n, size int, cmp sorting.Comparator) bool {
	for i := 1; i < n; i++ {
		if cmp(seq[(i-1)*size:i*size], seq[i*size:(i+1)*size]) > 0 {
			return false
		}
	}

	return true
}
