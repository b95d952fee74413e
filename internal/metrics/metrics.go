// Package metrics exposes Prometheus instrumentation for the Boozer
// transform. The counters are cheap enough to keep in the hot path; the
// HTTP handler is only served when the caller asks for a listener.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	surfacesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booz_surfaces_total",
			Help: "Flux surfaces processed, by outcome (ok, degenerate, error).",
		},
		[]string{"status"},
	)

	surfaceDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "booz_surface_duration_seconds",
			Help:    "Wall time per flux surface transform.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	)
)

func init() {
	prometheus.MustRegister(surfacesTotal)
	prometheus.MustRegister(surfaceDurationSeconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// SurfaceProcessed counts one surface outcome.
func SurfaceProcessed(status string) {
	surfacesTotal.WithLabelValues(status).Inc()
}

// ObserveSurfaceDuration records the wall time of one surface transform.
func ObserveSurfaceDuration(d time.Duration) {
	surfaceDurationSeconds.Observe(d.Seconds())
}
