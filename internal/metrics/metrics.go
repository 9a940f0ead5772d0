package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "concierge_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method", "endpoint"},
	)

	ToolInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_tool_invocations_total",
			Help: "Tool invocations by tool name",
		},
		[]string{"tool"},
	)

	DegradedResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_degraded_responses_total",
			Help: "Responses served through a degraded path, by stage",
		},
		[]string{"stage"},
	)

	ReasoningLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "concierge_reasoning_latency_seconds",
			Help: "Reasoning-service call latency in seconds",
		},
	)

	SynthesisLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "concierge_tts_latency_seconds",
			Help: "Speech synthesis latency in seconds",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "concierge_active_sessions",
			Help: "Number of live sessions",
		},
	)
)
