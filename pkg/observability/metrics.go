// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the chatbridge gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to the backend timeout.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbridge_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbridge_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method"},
	)

	// StreamingConnections tracks the number of active SSE streaming connections.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatbridge_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// BackendRequestsTotal counts completion calls sent to the prompt
	// backend by HTTP status ("error" for transport failures).
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbridge_backend_requests_total",
			Help: "Backend completion requests",
		},
		[]string{"status"},
	)

	// BackendLatency records backend completion latency in seconds.
	BackendLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbridge_backend_latency_seconds",
			Help:    "Backend latency",
			Buckets: LLMBuckets,
		},
	)

	// EstimatedTokensTotal counts estimated tokens by direction
	// (input/output). Counts come from the character-length heuristic,
	// not a tokenizer.
	EstimatedTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbridge_estimated_tokens_total",
			Help: "Estimated token count",
		},
		[]string{"direction"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		BackendRequestsTotal,
		BackendLatency,
		EstimatedTokensTotal,
	)
}
