package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "covid_report"

// Metrics holds the Prometheus counters, histograms, and gauges for one report run.
type Metrics struct {
	RowsLoaded         prometheus.Gauge
	FocusRows          prometheus.Gauge
	MissingValues      prometheus.Gauge
	CountriesReported  prometheus.Gauge
	ChartsRendered     *prometheus.CounterVec   // labels: chart
	ChartRenderErrors  *prometheus.CounterVec   // labels: chart
	StageDuration      *prometheus.HistogramVec // labels: stage={load,prepare,render,summary}
	LastRunCompletedAt prometheus.Gauge

	gatherer prometheus.Gatherer
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_loaded",
			Help:      "Rows read from the input dataset.",
		}),
		FocusRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "focus_rows",
			Help:      "Rows kept after filtering to the focus countries.",
		}),
		MissingValues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "missing_values",
			Help:      "Missing numeric cells in the prepared rows.",
		}),
		CountriesReported: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "countries_reported",
			Help:      "Focus countries present in the latest snapshot.",
		}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_rendered_total",
			Help:      "Charts written to the output directory.",
		}, []string{"chart"}),
		ChartRenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_render_errors_total",
			Help:      "Charts that failed to render or write.",
		}, []string{"chart"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each report stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),
		LastRunCompletedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_completed_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsLoaded,
		m.FocusRows,
		m.MissingValues,
		m.CountriesReported,
		m.ChartsRendered,
		m.ChartRenderErrors,
		m.StageDuration,
		m.LastRunCompletedAt,
	}
}

// NewMetrics creates and registers all report metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	m.gatherer = prometheus.DefaultGatherer
	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	m.gatherer = reg
	return m
}

// WriteTextfile writes every registered metric to path in the text exposition
// format, for collection by a node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
