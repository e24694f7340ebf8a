package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "honeypot_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Engagement metrics
	MessagesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_messages_ingested_total",
			Help: "Inbound messages processed, by verdict",
		},
		[]string{"verdict"}, // "scam" or "benign"
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "honeypot_sessions_created_total",
			Help: "Sessions created",
		},
	)

	ScamSessionsDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "honeypot_scam_sessions_detected_total",
			Help: "Sessions flagged as scams",
		},
	)

	// Reporting metrics
	ReportsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_reports_dispatched_total",
			Help: "Final reports dispatched to the callback endpoint",
		},
		[]string{"outcome"}, // "delivered" or "failed"
	)

	CallbackLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "honeypot_callback_latency_seconds",
			Help:    "Callback delivery latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	ArchiveWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_archive_writes_total",
			Help: "Report archive writes",
		},
		[]string{"outcome"},
	)

	// Security metrics
	BlockedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_blocked_requests_total",
			Help: "Requests rejected before reaching a handler",
		},
		[]string{"reason"},
	)

	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "honeypot_rate_limit_hits_total",
			Help: "Rate limit hits",
		},
		[]string{"endpoint"},
	)
)
