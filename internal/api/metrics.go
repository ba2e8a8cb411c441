package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "worldwise",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "worldwise",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	citiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "worldwise",
		Subsystem: "cities",
		Name:      "created_total",
		Help:      "Cities added through the API",
	})

	citiesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "worldwise",
		Subsystem: "cities",
		Name:      "deleted_total",
		Help:      "Cities removed through the API",
	})
)
