// Package metrics provides Prometheus instrumentation for the intake server.
// The server registers its collectors here and exposes them at GET /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SubmissionsAccepted counts submissions that were validated and durably stored.
var SubmissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "anketa_submissions_accepted_total",
	Help: "Survey submissions validated and appended to the log.",
})

// SubmissionsRejected counts rejected submissions by reason
// (invalid_json, validation_error, persistence_error).
var SubmissionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "anketa_submissions_rejected_total",
	Help: "Survey submissions rejected, by reason.",
}, []string{"reason"})

// HTTPRequests counts HTTP requests by method, path and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "anketa_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "path", "status"})

// HTTPDuration tracks HTTP request latency.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "anketa_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path"})

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
