package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Verification lifecycle

	CodesIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "verify",
		Name:      "codes_issued_total",
		Help:      "Total verification codes issued.",
	})

	VerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "verify",
		Name:      "verifications_total",
		Help:      "Total verify attempts, by result.",
	}, []string{"result"}) // verified | invalid | expired

	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "verify",
		Name:      "rate_limited_total",
		Help:      "Total issuance requests rejected by the rate limiter.",
	})

	// Sweep

	SweepDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "verify",
		Name:      "sweep_deleted_total",
		Help:      "Total expired verification codes removed by the sweep.",
	})

	SweepCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "verify",
		Name:      "sweep_cycle_duration_seconds",
		Help:      "Time taken for one sweep cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "verify",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "verify",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		CodesIssuedTotal,
		VerificationsTotal,
		RateLimitedTotal,
		SweepDeletedTotal,
		SweepCycleDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}
