package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the HR module.
type Metrics struct {
	// Leave adjustment outcomes by result ("applied", "rejected")
	LeaveAdjustments *prometheus.CounterVec

	// Performance upserts by path ("created", "blended")
	PerformanceUpserts *prometheus.CounterVec

	// Mutation latencies by operation
	MutationLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all HR module metrics registered.
func New() *Metrics {
	return &Metrics{
		LeaveAdjustments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minehub_hr_leave_adjustments_total",
			Help: "Total leave adjustments by outcome",
		}, []string{"outcome"}),

		PerformanceUpserts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minehub_hr_performance_upserts_total",
			Help: "Total performance upserts by path",
		}, []string{"path"}),

		MutationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "minehub_hr_mutation_duration_seconds",
			Help:    "Duration of HR mutations by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncrementLeaveAdjustment records a leave adjustment outcome.
func (m *Metrics) IncrementLeaveAdjustment(outcome string) {
	if m != nil {
		m.LeaveAdjustments.WithLabelValues(outcome).Inc()
	}
}

// IncrementPerformanceUpsert records which upsert path ran.
func (m *Metrics) IncrementPerformanceUpsert(path string) {
	if m != nil {
		m.PerformanceUpserts.WithLabelValues(path).Inc()
	}
}

// ObserveMutation records the duration of a mutation. Call with time.Now()
// at the start of the operation.
func (m *Metrics) ObserveMutation(operation string, start time.Time) {
	if m != nil {
		m.MutationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
