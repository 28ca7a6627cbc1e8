// Package metrics exposes the Prometheus collectors for platewise.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts Spoonacular API requests by outcome. Outcomes
	// are "ok", "http_error", "network_error" and "decode_error".
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "platewise",
		Name:      "upstream_requests_total",
		Help:      "Total Spoonacular API requests by outcome",
	}, []string{"outcome"})

	// UpstreamRequestDuration tracks Spoonacular API request latency.
	UpstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "platewise",
		Name:      "upstream_request_duration_seconds",
		Help:      "Spoonacular API request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	// ToolCalls counts MCP tool invocations by tool name and outcome.
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "platewise",
		Name:      "tool_calls_total",
		Help:      "Total MCP tool calls by tool and outcome",
	}, []string{"tool", "outcome"})

	// PlansGenerated counts successfully generated meal plans by time frame.
	PlansGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "platewise",
		Name:      "plans_generated_total",
		Help:      "Total meal plans generated by time frame",
	}, []string{"time_frame"})
)
