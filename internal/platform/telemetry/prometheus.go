package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for QuoteFetches.
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "upstream_unavailable"
	OutcomeStatus      = "upstream_status"
	OutcomeMalformed   = "malformed_response"
	OutcomeError       = "error"
)

// QuoteFetches counts upstream quote fetches by outcome. It is registered on
// the default registry and therefore served by promhttp on /-/metrics.
var QuoteFetches = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "inspire",
	Name:      "quote_fetches_total",
	Help:      "Quote fetches from the upstream provider, by outcome.",
}, []string{"outcome"})

// RecordQuoteFetch increments QuoteFetches for the given outcome.
func RecordQuoteFetch(outcome string) {
	QuoteFetches.WithLabelValues(outcome).Inc()
}
