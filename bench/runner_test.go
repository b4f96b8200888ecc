package bench

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/amp-labs/amp-sort/dataset"
	"github.com/amp-labs/amp-sort/logger"
	"github.com/amp-labs/amp-sort/sorting"
	"github.com/neilotoole/slogt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	return logger.WithLogger(t.Context(), slogt.New(t))
}

func randomNumbers(n int) *dataset.Numbers {
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec

	values := make([]int32, n)
	for i := range values {
		values[i] = rng.Int32N(1000) - 500 //nolint:mnd
	}

	return dataset.NewNumbers(values)
}

func newTestRunner(t *testing.T) (*Runner, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	return &Runner{
		Tracer:  tp.Tracer(tracerName),
		Metrics: NewMetrics(prometheus.NewRegistry()),
	}, exporter
}

func TestRunner_AllAlgorithms(t *testing.T) {
	t.Parallel()

	runner, _ := newTestRunner(t)
	set := randomNumbers(500)

	results, err := runner.Run(testContext(t), Plan(set, sorting.Algorithms(), 500))
	require.NoError(t, err)
	require.Len(t, results, len(sorting.Algorithms()))

	for i, alg := range sorting.Algorithms() {
		res := results[i]

		assert.Equal(t, alg, res.Algorithm)
		assert.Equal(t, StatusOK, res.Status, res.Error)
		assert.Equal(t, dataset.KindNumbers, res.Dataset)
		assert.Equal(t, 500, res.Count)
		assert.Equal(t, int64(500*dataset.NumberSize), res.DataBytes)
		assert.Positive(t, res.Comparisons)
		assert.NotEmpty(t, res.ID)

		// Numbers have a single sorted order, so every algorithm ends at the same bytes.
		assert.Equal(t, results[0].Digest, res.Digest)
	}

	assert.Positive(t, results[3].ScratchPeak, "merge sort uses scratch memory")
	assert.InDelta(t, 1.0,
		testutil.ToFloat64(runner.Metrics.cases.WithLabelValues("quick", "numbers", "ok")), 0)
}

func TestRunner_DoesNotModifySet(t *testing.T) {
	t.Parallel()

	runner, _ := newTestRunner(t)
	set := randomNumbers(100)
	before := set.Value(0)

	_, err := runner.Run(testContext(t), []Case{{Algorithm: sorting.QuickSort, Set: set, Count: 100}})
	require.NoError(t, err)

	assert.Equal(t, before, set.Value(0))
}

func TestRunner_Words(t *testing.T) {
	t.Parallel()

	runner, _ := newTestRunner(t)

	set, err := dataset.NewWords([]string{"pear", "apple", "fig", "banana", "apple"}, 8)
	require.NoError(t, err)

	results, err := runner.Run(testContext(t), Plan(set, []sorting.Algorithm{sorting.MergeSort, sorting.ShellSort}, 5))
	require.NoError(t, err)

	for _, res := range results {
		assert.Equal(t, StatusOK, res.Status)
		assert.Equal(t, dataset.KindWords, res.Dataset)
		assert.Equal(t, int64(40), res.DataBytes)
	}

	assert.Equal(t, results[0].Digest, results[1].Digest)
}

func TestRunner_LargeQuadratic(t *testing.T) {
	t.Parallel()

	set := randomNumbers(20)
	cases := []Case{
		{Algorithm: sorting.BubbleSort, Set: set, Count: 20},
		{Algorithm: sorting.MergeSort, Set: set, Count: 20},
		{Algorithm: sorting.InsertionSort, Set: set, Count: 5},
	}

	t.Run("declined", func(t *testing.T) {
		t.Parallel()

		runner, _ := newTestRunner(t)
		runner.LargeThreshold = 10

		results, err := runner.Run(testContext(t), cases)
		require.NoError(t, err)

		assert.Equal(t, StatusSkipped, results[0].Status)
		assert.Equal(t, StatusOK, results[1].Status)
		assert.Equal(t, StatusOK, results[2].Status)
		assert.Zero(t, results[0].Comparisons)
	})

	t.Run("confirmed", func(t *testing.T) {
		t.Parallel()

		runner, _ := newTestRunner(t)
		runner.LargeThreshold = 10

		var asked []sorting.Algorithm

		runner.Confirm = func(_ context.Context, c Case) bool {
			asked = append(asked, c.Algorithm)

			return true
		}

		results, err := runner.Run(testContext(t), cases)
		require.NoError(t, err)

		assert.Equal(t, []sorting.Algorithm{sorting.BubbleSort}, asked)

		for _, res := range results {
			assert.Equal(t, StatusOK, res.Status)
		}
	})
}

func TestRunner_ConfirmsBeforeRunning(t *testing.T) {
	t.Parallel()

	runner, exporter := newTestRunner(t)
	runner.LargeThreshold = 10
	runner.Workers = 2

	set := randomNumbers(20)
	cases := []Case{
		{Algorithm: sorting.MergeSort, Set: set, Count: 20},
		{Algorithm: sorting.QuickSort, Set: set, Count: 20},
		{Algorithm: sorting.BubbleSort, Set: set, Count: 20},
		{Algorithm: sorting.SelectionSort, Set: set, Count: 20},
	}

	var spansAtConfirm []int

	runner.Confirm = func(_ context.Context, c Case) bool {
		spansAtConfirm = append(spansAtConfirm, len(exporter.GetSpans()))

		return c.Algorithm == sorting.BubbleSort
	}

	results, err := runner.Run(testContext(t), cases)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0}, spansAtConfirm)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, StatusOK, results[1].Status)
	assert.Equal(t, StatusOK, results[2].Status)
	assert.Equal(t, StatusSkipped, results[3].Status)
}

func TestRunner_MemoryLimit(t *testing.T) {
	t.Parallel()

	runner, exporter := newTestRunner(t)
	runner.MemoryLimit = 16

	set := randomNumbers(100)

	results, err := runner.Run(testContext(t), []Case{
		{Algorithm: sorting.MergeSort, Set: set, Count: 100},
		{Algorithm: sorting.ShellSort, Set: set, Count: 100},
	})
	require.ErrorIs(t, err, ErrCaseFailed)
	require.ErrorIs(t, err, sorting.ErrAllocation)

	assert.Equal(t, StatusAllocationFailed, results[0].Status)
	assert.NotEmpty(t, results[0].Error)
	assert.Empty(t, results[0].Digest)
	assert.Equal(t, StatusOK, results[1].Status)

	assert.InDelta(t, 1.0,
		testutil.ToFloat64(runner.Metrics.failures.WithLabelValues("merge", "numbers", string(StatusAllocationFailed))), 0)

	names := make([]string, 0)
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}

	assert.ElementsMatch(t, []string{"sort merge", "sort shell", "bench.Run"}, names)
}

func TestRunner_TooFewRecords(t *testing.T) {
	t.Parallel()

	runner, _ := newTestRunner(t)

	results, err := runner.Run(testContext(t), []Case{{Algorithm: sorting.QuickSort, Set: randomNumbers(10), Count: 11}})
	require.ErrorIs(t, err, ErrCaseFailed)
	require.ErrorIs(t, err, dataset.ErrTooFewRecords)

	assert.Equal(t, StatusFailed, results[0].Status)
}

func TestRunner_Workers(t *testing.T) {
	t.Parallel()

	runner, _ := newTestRunner(t)
	runner.Workers = 4

	set := randomNumbers(300)
	cases := Plan(set, []sorting.Algorithm{sorting.MergeSort, sorting.QuickSort, sorting.ShellSort}, 10, 100, 300)

	results, err := runner.Run(testContext(t), cases)
	require.NoError(t, err)
	require.Len(t, results, len(cases))

	for i, res := range results {
		assert.Equal(t, cases[i].Algorithm, res.Algorithm)
		assert.Equal(t, cases[i].Count, res.Count)
		assert.Equal(t, StatusOK, res.Status)
	}
}

func TestRunner_Canceled(t *testing.T) {
	t.Parallel()

	runner, _ := newTestRunner(t)

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := runner.Run(ctx, []Case{{Algorithm: sorting.MergeSort, Set: randomNumbers(10), Count: 10}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestIsSorted(t *testing.T) {
	t.Parallel()

	set := dataset.NewNumbers([]int32{1, 2, 2, 5})
	assert.True(t, isSorted(set.Records(), 4, dataset.NumberSize, set.Comparator()))

	set = dataset.NewNumbers([]int32{1, 3, 2})
	assert.False(t, isSorted(set.Records(), 3, dataset.NumberSize, set.Comparator()))
	assert.True(t, isSorted(set.Records(), 2, dataset.NumberSize, set.Comparator()))
}

func TestPlan(t *testing.T) {
	t.Parallel()

	set := randomNumbers(1)
	cases := Plan(set, []sorting.Algorithm{sorting.QuickSort, sorting.MergeSort}, 1, 2)

	assert.Equal(t, []Case{
		{Algorithm: sorting.QuickSort, Set: set, Count: 1},
		{Algorithm: sorting.QuickSort, Set: set, Count: 2},
		{Algorithm: sorting.MergeSort, Set: set, Count: 1},
		{Algorithm: sorting.MergeSort, Set: set, Count: 2},
	}, cases)

	assert.Equal(t, 2_000_000, Sizes()[len(Sizes())-1])
}

func TestResult_MB(t *testing.T) {
	t.Parallel()

	res := Result{DataBytes: 4 * 1024 * 1024, ScratchPeak: 512 * 1024}

	assert.InDelta(t, 4.0, res.DataMB(), 1e-9)
	assert.InDelta(t, 0.5, res.ScratchMB(), 1e-9)
}
