// Package metrics exposes Prometheus metrics for data exports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "confdata"

// ExportMetrics tracks export requests.
//
// Metrics:
//   - confdata_exports_total: exports by report and outcome (ok, error)
//   - confdata_export_duration_seconds: time spent building and writing an export
type ExportMetrics struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewExportMetrics creates export metrics registered on a fresh registry.
func NewExportMetrics() *ExportMetrics {
	m := &ExportMetrics{
		registry: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total number of data exports served",
			},
			[]string{"report", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "export_duration_seconds",
				Help:      "Duration of data exports in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"report"},
		),
	}
	m.registry.MustRegister(m.total, m.duration)
	return m
}

// Observe records one export. A nil receiver is a no-op.
func (m *ExportMetrics) Observe(report string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.total.WithLabelValues(report, outcome).Inc()
	m.duration.WithLabelValues(report).Observe(elapsed.Seconds())
}

// Handler returns the Prometheus scrape handler for the export registry.
func (m *ExportMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
