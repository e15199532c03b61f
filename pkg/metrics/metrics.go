package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "programhub",
			Subsystem: "applications",
			Name:      "operations_total",
			Help:      "Lifecycle operations by outcome.",
		},
		[]string{"operation", "result"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "programhub",
			Subsystem: "applications",
			Name:      "transitions_total",
			Help:      "Committed status transitions.",
		},
		[]string{"from", "to"},
	)

	gatewayFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "programhub",
			Subsystem: "gateway",
			Name:      "failures_total",
			Help:      "Failed persistence gateway calls.",
		},
		[]string{"op"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "programhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "programhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(
		operations,
		transitions,
		gatewayFailures,
		httpRequests,
		httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordOperation counts a lifecycle operation; result is "ok" or an error class.
func RecordOperation(operation, result string) {
	operations.WithLabelValues(operation, result).Inc()
}

func RecordTransition(from, to string) {
	transitions.WithLabelValues(from, to).Inc()
}

func RecordGatewayFailure(op string) {
	gatewayFailures.WithLabelValues(op).Inc()
}

// RecordHTTPRequest records one served request. route is the gin route template.
func RecordHTTPRequest(method, route, status string, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}
