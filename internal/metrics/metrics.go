package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status class.",
		},
		[]string{"endpoint", "status"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "booking_transitions_total",
			Help:      "Booking lifecycle transitions by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "availability_cache_total",
			Help:      "Availability cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, transitions, cacheHits)
	})
}

// IncHTTP increments the request counter for an endpoint and status class.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncTransition counts a lifecycle transition attempt.
func IncTransition(operation, outcome string) {
	transitions.WithLabelValues(operation, outcome).Inc()
}

// IncCache counts an availability cache lookup result.
func IncCache(result string) {
	cacheHits.WithLabelValues(result).Inc()
}
