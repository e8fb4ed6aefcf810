package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics tracks the agent's own HTTP serving, independent of the
// llm_* contract families rendered by the Exporter.
//
// Metrics:
//   - promptpulse_http_requests_total{method, path, status}
//   - promptpulse_http_request_duration_seconds{method, path}
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers the HTTP metrics on registry.
func NewHTTPMetrics(registry *prometheus.Registry) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "promptpulse",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests served by the agent",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "promptpulse",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				// /call waits on an upstream LLM, so the buckets stretch well
				// past the usual request-serving range.
				Buckets: []float64{0.005, 0.05, 0.25, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// Record records one served request.
func (m *HTTPMetrics) Record(method, path, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
