package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the reports module.
type Metrics struct {
	// Report builds by report name
	ReportBuilds *prometheus.CounterVec

	// Report build latency by report name
	BuildLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all reports module metrics registered.
func New() *Metrics {
	return &Metrics{
		ReportBuilds: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minehub_report_builds_total",
			Help: "Total report builds by report",
		}, []string{"report"}),

		BuildLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "minehub_report_build_duration_seconds",
			Help:    "Duration of report builds by report",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"report"}),
	}
}

// ObserveBuild records one report build. Call with time.Now() at the start
// of the build.
func (m *Metrics) ObserveBuild(report string, start time.Time) {
	if m != nil {
		m.ReportBuilds.WithLabelValues(report).Inc()
		m.BuildLatency.WithLabelValues(report).Observe(time.Since(start).Seconds())
	}
}
