package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var requestDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Metrics holds the Prometheus instruments the dispatcher and its
// surrounding HTTP server record against.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	ErrorsTotal        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	RoutesRegistered   prometheus.Gauge
}

// InitMetrics creates and registers the adapter's Prometheus instruments
// against reg.
func InitMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpcapi_requests_total",
			Help: "Total number of dispatched requests, by procedure and resulting HTTP status.",
		}, []string{"procedure", "method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rpcapi_request_duration_seconds",
			Help:    "Time from request dispatch start to response write, by procedure.",
			Buckets: requestDurationBuckets,
		}, []string{"procedure"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpcapi_errors_total",
			Help: "Total number of error responses, by stable error code.",
		}, []string{"code"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpcapi_validation_failures_total",
			Help: "Total number of input or output schema validation failures, by procedure and plane.",
		}, []string{"procedure", "plane"}),
		RoutesRegistered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rpcapi_routes_registered",
			Help: "Number of procedures currently bound in the route table.",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ErrorsTotal,
		m.ValidationFailures,
		m.RoutesRegistered,
	)

	return m
}

// RecordRequest records a completed dispatch: the resolved procedure ID
// (or "" for requests that failed before a procedure was resolved, which
// the dispatcher reports for every decode failure: no matching route,
// unsupported content type, oversized or unparsable body), its HTTP method,
// the response status, and the dispatch duration.
func (m *Metrics) RecordRequest(procedure, method string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(procedure, method, strconv.Itoa(status)).Inc()
	if procedure != "" {
		m.RequestDuration.WithLabelValues(procedure).Observe(duration.Seconds())
	}
}

// RecordError increments the error counter for a stable error code
// (e.g. "BAD_REQUEST", "NOT_FOUND").
func (m *Metrics) RecordError(code string) {
	m.ErrorsTotal.WithLabelValues(code).Inc()
}

// RecordValidationFailure records a schema validation failure for a
// procedure on either the "input" or "output" plane.
func (m *Metrics) RecordValidationFailure(procedure, plane string) {
	m.ValidationFailures.WithLabelValues(procedure, plane).Inc()
}

// SetRoutesRegistered reports the current size of the route table.
func (m *Metrics) SetRoutesRegistered(count int) {
	m.RoutesRegistered.Set(float64(count))
}

// Handler returns the Prometheus scrape handler mounted at the
// configured metrics path.
func Handler() http.Handler {
	return promhttp.Handler()
}
