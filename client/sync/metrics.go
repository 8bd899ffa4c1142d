package sync

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess      = "success"
	outcomeFailure      = "failure"
	outcomeUnauthorized = "unauthorized"
	outcomeSuppressed   = "suppressed"
)

var (
	syncOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storesync_operations_total",
			Help: "Total number of collection sync operations by outcome",
		},
		[]string{"collection", "operation", "outcome"},
	)

	syncOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storesync_operation_duration_seconds",
			Help:    "Duration of collection sync operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection", "operation"},
	)
)

// observe records one finished sync operation.
func observe(collection, operation, outcome string, start time.Time) {
	syncOperationsTotal.WithLabelValues(collection, operation, outcome).Inc()
	syncOperationDuration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}
