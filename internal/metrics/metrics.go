package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sweep metrics cover the scoring scheduler; request metrics cover the
// HTTP surface. All registered on the default registry and served on
// /metrics.
var (
	SweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transitpulse_sweeps_total",
		Help: "Number of completed full scoring sweeps.",
	})

	SweepsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transitpulse_sweeps_skipped_total",
		Help: "Number of sweep triggers collapsed into an in-flight run.",
	})

	SweepDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transitpulse_sweep_duration_seconds",
		Help:    "Duration of full scoring sweeps.",
		Buckets: prometheus.DefBuckets,
	})

	RoutesScoredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transitpulse_routes_scored_total",
		Help: "Number of routes successfully recomputed across all sweeps.",
	})

	RouteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transitpulse_route_failures_total",
		Help: "Number of per-route failures isolated during sweeps.",
	})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transitpulse_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "status"})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
