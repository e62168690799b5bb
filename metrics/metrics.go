// Package metrics provides Prometheus metrics for the Finnish ID MCP server.
// It tracks tool calls, latencies, validation outcomes, and recovered panics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "finnish_id_mcp"
)

var (
	// RequestsTotal counts total MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures request latency distribution
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Request latency distribution by tool",
		Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing requests
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of requests currently being processed",
	}, []string{"tool"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// ValidationsTotal counts identifier validations by kind and result
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "validations_total",
		Help:      "Identifier validations by kind and result",
	}, []string{"kind", "result"})

	// ValidationRejections counts rejected identifiers by kind and reason
	ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "validation_rejections_total",
		Help:      "Rejected identifiers by kind and rejection reason",
	}, []string{"kind", "reason"})
)

// RecordRequest records a completed request with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordValidation records the outcome of validating one identifier.
// reason is ignored for valid identifiers.
func RecordValidation(kind string, valid bool, reason string) {
	if valid {
		ValidationsTotal.WithLabelValues(kind, "valid").Inc()
		return
	}
	ValidationsTotal.WithLabelValues(kind, "invalid").Inc()
	if reason == "" {
		reason = "unknown"
	}
	ValidationRejections.WithLabelValues(kind, reason).Inc()
}
