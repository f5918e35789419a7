// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "tinywin"

// Label names.
const (
	LabelMethod    = "method"
	LabelRoute     = "route"
	LabelStatus    = "status"
	LabelBackend   = "backend"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
)

// Storage outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// HTTPRequests counts served requests by route pattern.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	// StorageOps counts repository calls by backend, operation and outcome.
	StorageOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Total storage operations",
		},
		[]string{LabelBackend, LabelOperation, LabelOutcome},
	)

	StorageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Storage operation duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{LabelBackend, LabelOperation},
	)
)
