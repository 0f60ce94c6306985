package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quote metrics
var (
	// QuotesTotal tracks resolved quotes by the branch that produced them
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatquote_quotes_total",
			Help: "Total number of enterprise quotes by source (remote, local)",
		},
		[]string{"source"},
	)

	// RemotePricingFailures tracks failed remote pricing lookups that fell back to local tables
	RemotePricingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatquote_remote_pricing_failures_total",
			Help: "Total number of remote pricing lookups that failed, by error type",
		},
		[]string{"type"},
	)

	// QuotesRejected tracks quote requests rejected by input validation
	QuotesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatquote_quotes_rejected_total",
			Help: "Total number of quote requests rejected before pricing, by error type",
		},
		[]string{"type"},
	)
)

// Checkout metrics
var (
	// CheckoutSessionsTotal tracks checkout session creation by kind and status
	CheckoutSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatquote_checkout_sessions_total",
			Help: "Total number of checkout session requests by kind (enterprise, standard) and status",
		},
		[]string{"kind", "status"},
	)

	// AffiliateVerificationsTotal tracks affiliate code verifications by result
	AffiliateVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatquote_affiliate_verifications_total",
			Help: "Total number of affiliate code verifications by result (valid, invalid, error)",
		},
		[]string{"result"},
	)
)

// HTTP metrics
var (
	// HTTPRequestDuration tracks API request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seatquote_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)
)
