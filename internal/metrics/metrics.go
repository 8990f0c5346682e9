// Package metrics defines the Prometheus collectors for tool calls and
// upstream Pingera API requests.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pingera_mcp"

// Tool call outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds all collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ToolCallsTotal     *prometheus.CounterVec
	ToolDuration       *prometheus.HistogramVec
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	ExtractionFailures prometheus.Counter
}

// New creates and registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ToolCallsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total MCP tool and resource calls",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_duration_seconds",
				Help:      "Tool call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		APIRequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total requests sent to the Pingera API",
			},
			[]string{"method", "route", "status"}, // status=0 on transport failure
		),
		APIRequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Pingera API request duration in seconds, retries included",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ExtractionFailures: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extraction_failures_total",
				Help:      "Objects the normalizer could not convert",
			},
		),
	}
}

// ObserveTool records one finished tool call.
func (m *Metrics) ObserveTool(tool string, ok bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeError
	}
	m.ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveRequest records one upstream API request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.APIRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ExtractionFailed counts one normalizer fallback.
func (m *Metrics) ExtractionFailed() {
	if m == nil {
		return
	}
	m.ExtractionFailures.Inc()
}
