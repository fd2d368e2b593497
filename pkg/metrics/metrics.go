package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LeaderboardMetrics records the outcome of every leaderboard request.
type LeaderboardMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewLeaderboardMetrics registers the collectors on a dedicated registry.
func NewLeaderboardMetrics() *LeaderboardMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &LeaderboardMetrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_requests_total",
			Help: "Leaderboard requests by response status code.",
		}, []string{"status"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "leaderboard_request_duration_seconds",
			Help:    "Time spent answering a leaderboard request.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveRequest counts a handled request and its latency.
func (m *LeaderboardMetrics) ObserveRequest(statusCode int, elapsed time.Duration) {
	m.requests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (m *LeaderboardMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *LeaderboardMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
