package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather session.
type Metrics struct {
	FetchesTotal     *prometheus.CounterVec // labels: outcome={success,not_found,unavailable,fallback_exhausted}
	FallbackAttempts prometheus.Counter
	StaleDiscards    prometheus.Counter
	StoreErrors      prometheus.Counter
	SessionReady     prometheus.Gauge

	UpstreamDuration *prometheus.HistogramVec // labels: endpoint={weather,trend,geoip}
}

// NewMetrics creates and registers all session metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_app",
			Name:      "fetches_total",
			Help:      "Completed fetch attempts by outcome.",
		}, []string{"outcome"}),
		FallbackAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_app",
			Name:      "fallback_attempts_total",
			Help:      "Automatic default-city fallback fetches issued.",
		}),
		StaleDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_app",
			Name:      "stale_discards_total",
			Help:      "Fetch results discarded because a newer cycle superseded them.",
		}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_app",
			Name:      "store_errors_total",
			Help:      "Failed reads or writes against the preference/favorites store.",
		}),
		SessionReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_app",
			Name:      "session_ready",
			Help:      "1 once the initial fetch cycle has resolved, 0 before.",
		}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_app",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
	}

	prometheus.MustRegister(
		m.FetchesTotal,
		m.FallbackAttempts,
		m.StaleDiscards,
		m.StoreErrors,
		m.SessionReady,
		m.UpstreamDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchesTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_app", Name: "fetches_total"}, []string{"outcome"}),
		FallbackAttempts: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_app", Name: "fallback_attempts_total"}),
		StaleDiscards:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_app", Name: "stale_discards_total"}),
		StoreErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_app", Name: "store_errors_total"}),
		SessionReady:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_app", Name: "session_ready"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_app", Name: "upstream_request_duration_seconds"}, []string{"endpoint"}),
	}
}
