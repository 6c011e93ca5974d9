package upstream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK             = "ok"
	outcomeStatusError    = "status_error"
	outcomeTransportError = "transport_error"
)

var (
	// upstreamReqs counts outbound calls by upstream name, method and outcome.
	upstreamReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "swasth",
			Name:      "upstream_requests_total",
			Help:      "Total number of outbound upstream requests.",
		},
		[]string{"upstream", "method", "outcome"},
	)

	// upstreamLat records outbound call duration, including failed calls.
	upstreamLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "swasth",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of outbound upstream requests in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"upstream", "method"},
	)
)

func init() {
	prometheus.MustRegister(upstreamReqs, upstreamLat)
}

func observe(name, method, outcome string, start time.Time) {
	upstreamReqs.WithLabelValues(name, method, outcome).Inc()
	upstreamLat.WithLabelValues(name, method).Observe(time.Since(start).Seconds())
}
