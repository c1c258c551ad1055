// Package metrics holds the process-wide Prometheus collectors. Counters are
// registered at init and incremented from the fetch layer, the fallback
// orchestrator and the stream resolver; /metrics serves the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchAttempts counts upstream page fetches by provider and outcome
	// (ok / blocked / bad_status / too_small / error).
	FetchAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goalfeed_fetch_attempts_total",
			Help: "Upstream fetch attempts by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	// TierResults counts fallback tier outcomes (ok / empty / panic).
	TierResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goalfeed_tier_results_total",
			Help: "Schedule fallback tier outcomes.",
		},
		[]string{"tier", "outcome"},
	)

	// Resolutions counts stream id resolutions by provider and outcome
	// (ok / not_found / malformed / unconfigured).
	Resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goalfeed_stream_resolutions_total",
			Help: "Stream id resolutions by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(FetchAttempts, TierResults, Resolutions)
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
