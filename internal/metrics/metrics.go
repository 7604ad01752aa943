// Package metrics exposes Prometheus instrumentation for the Wilayah server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wilayah_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wilayah_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wilayah_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"outcome"},
	)

	// RegistrationsTotal counts completed account registrations.
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wilayah_registrations_total",
			Help: "Total number of completed registrations",
		},
	)

	// EntityWritesTotal counts create/update/delete operations by entity.
	EntityWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wilayah_entity_writes_total",
			Help: "Total number of entity write operations",
		},
		[]string{"entity", "operation"},
	)
)

// RecordHTTPRequest records one handled HTTP request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLogin records a login attempt.
func RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	LoginsTotal.WithLabelValues(outcome).Inc()
}

// RecordRegistration records a completed registration.
func RecordRegistration() {
	RegistrationsTotal.Inc()
}

// RecordEntityWrite records a create, update or delete on an entity.
func RecordEntityWrite(entity, operation string) {
	EntityWritesTotal.WithLabelValues(entity, operation).Inc()
}
