package bench

import (
	"github.com/amp-labs/amp-sort/lazy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus series a Runner records per case.
type Metrics struct {
	duration    *prometheus.HistogramVec
	cpu         *prometheus.HistogramVec
	comparisons *prometheus.CounterVec
	scratchPeak *prometheus.GaugeVec
	cases       *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewMetrics registers the benchmark series with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := []string{"algorithm", "dataset"}

	return &Metrics{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "amp_sort_duration_seconds",
			Help:    "Wall-clock time of one sort",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 14), //nolint:mnd
		}, labels),
		cpu: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "amp_sort_cpu_seconds",
			Help:    "Process CPU time spent during one sort",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 14), //nolint:mnd
		}, labels),
		comparisons: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "amp_sort_comparisons_total",
			Help: "Comparator calls made by sorts",
		}, labels),
		scratchPeak: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "amp_sort_scratch_peak_bytes",
			Help: "Largest scratch memory held at once by the most recent sort",
		}, labels),
		cases: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "amp_sort_cases_total",
			Help: "Benchmark cases by outcome",
		}, append(labels, "status")),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "amp_sort_failures_total",
			Help: "Benchmark cases that did not produce a sorted permutation",
		}, append(labels, "status")),
	}
}

// nolint:gochecknoglobals
var defaultMetrics = lazy.New(func() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
})

func (m *Metrics) observe(res Result) {
	alg, kind := res.Algorithm.Key(), res.Dataset.String()

	m.cases.WithLabelValues(alg, kind, string(res.Status)).Inc()

	switch res.Status {
	case StatusSkipped:
		return
	case StatusOK:
	default:
		m.failures.WithLabelValues(alg, kind, string(res.Status)).Inc()
	}

	m.duration.WithLabelValues(alg, kind).Observe(res.Wall.Seconds())
	m.cpu.WithLabelValues(alg, kind).Observe(res.CPU.Seconds())
	m.comparisons.WithLabelValues(alg, kind).Add(float64(res.Comparisons))
	m.scratchPeak.WithLabelValues(alg, kind).Set(float64(res.ScratchPeak))
}
