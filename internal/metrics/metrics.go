package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics represents the counters collected during one analyzer run.
type Metrics struct {
	Registry *prometheus.Registry

	FilesProcessedTotal   prometheus.Counter
	FilesSkippedTotal     *prometheus.CounterVec
	RecordsExtractedTotal *prometheus.CounterVec
	TuplesDroppedTotal    prometheus.Counter
	ChartsWrittenTotal    prometheus.Counter
	ChartsFailedTotal     *prometheus.CounterVec
	RunDuration           prometheus.Gauge
}

// NewMetrics creates the run metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	m.FilesProcessedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rngbench_files_processed_total",
			Help: "Total number of report files processed",
		},
	)

	m.FilesSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rngbench_files_skipped_total",
			Help: "Total number of report files that contributed no records",
		},
		[]string{"reason"},
	)

	m.RecordsExtractedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rngbench_records_extracted_total",
			Help: "Total number of benchmark records extracted",
		},
		[]string{"strategy"},
	)

	m.TuplesDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rngbench_tuples_dropped_total",
			Help: "Total number of matched tuples dropped on numeric conversion",
		},
	)

	m.ChartsWrittenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rngbench_charts_written_total",
			Help: "Total number of chart files written",
		},
	)

	m.ChartsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rngbench_charts_failed_total",
			Help: "Total number of charts that failed to render",
		},
		[]string{"chart"},
	)

	m.RunDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rngbench_run_duration_seconds",
			Help: "Wall time of the last analyzer run",
		},
	)

	m.Registry.MustRegister(
		m.FilesProcessedTotal,
		m.FilesSkippedTotal,
		m.RecordsExtractedTotal,
		m.TuplesDroppedTotal,
		m.ChartsWrittenTotal,
		m.ChartsFailedTotal,
		m.RunDuration,
	)

	return m
}

// FileProcessed counts a report handed to the loader.
func (m *Metrics) FileProcessed() { m.FilesProcessedTotal.Inc() }

// FileSkipped counts a report that contributed nothing.
func (m *Metrics) FileSkipped(reason string) { m.FilesSkippedTotal.WithLabelValues(reason).Inc() }

// RecordsExtracted counts records produced by an extraction strategy.
func (m *Metrics) RecordsExtracted(strategy string, n int) {
	m.RecordsExtractedTotal.WithLabelValues(strategy).Add(float64(n))
}

// TupleDropped counts a tuple rejected on numeric conversion.
func (m *Metrics) TupleDropped() { m.TuplesDroppedTotal.Inc() }

// ChartWritten counts a chart file written to disk.
func (m *Metrics) ChartWritten() { m.ChartsWrittenTotal.Inc() }

// ChartFailed counts a chart that could not be rendered.
func (m *Metrics) ChartFailed(chart string) { m.ChartsFailedTotal.WithLabelValues(chart).Inc() }

// WriteTextfile writes the registry in the Prometheus text format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
