package citystore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "worldwise",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Total city store operations by outcome",
	}, []string{"operation", "outcome"})

	remoteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "worldwise",
		Subsystem: "store",
		Name:      "remote_duration_seconds",
		Help:      "Latency of remote city store calls",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"operation"})

	skippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "worldwise",
		Subsystem: "store",
		Name:      "get_city_skipped_total",
		Help:      "GetCity calls answered from the current city without a request",
	})
)

func observe(op string, start time.Time, err error) {
	remoteDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "rejected"
	}
	operationsTotal.WithLabelValues(op, outcome).Inc()
}
