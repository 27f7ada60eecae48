package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	SkillRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_requests_total",
		Help: "Skill requests dispatched, by intent and outcome",
	}, []string{"intent", "status"})

	DispatchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skill_dispatch_latency_seconds",
		Help:    "Handler dispatch latency, including the upstream call",
		Buckets: prometheus.DefBuckets,
	})

	// Upstream metrics
	GeminiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gemini_requests_total",
		Help: "Outbound Gemini generateContent calls",
	}, []string{"status"})

	GeminiLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gemini_latency_seconds",
		Help:    "Gemini generateContent round-trip latency",
		Buckets: prometheus.DefBuckets,
	})
)
