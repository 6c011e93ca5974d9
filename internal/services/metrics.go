package services

import "github.com/prometheus/client_golang/prometheus"

// degradedTotal counts responses that were answered with a static or default
// payload instead of the real result, by operation and reason.
var degradedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "swasth_degraded_responses_total",
		Help: "Responses served from a fallback payload, by operation and reason.",
	},
	[]string{"operation", "reason"},
)

func init() {
	prometheus.MustRegister(degradedTotal)
}

func degraded(operation, reason string) {
	degradedTotal.WithLabelValues(operation, reason).Inc()
}
