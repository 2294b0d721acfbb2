// Package metrics exposes Prometheus instruments for portal graph builds.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/portalgrid/portal"
)

var (
	// BuildsTotal counts builds by result ("ok" or "invalid_input").
	BuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portalgrid_builds_total",
		Help: "Total portal graph builds by result",
	}, []string{"result"})

	// BuildDuration tracks decomposition plus adjacency time.
	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "portalgrid_build_duration_seconds",
		Help:    "Portal graph build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	// Rectangles reports the node count of the last build.
	Rectangles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portalgrid_rectangles",
		Help: "Rectangles produced by the last build",
	})

	// Edges reports the edge count of the last build.
	Edges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portalgrid_edges",
		Help: "Adjacency edges produced by the last build",
	})

	// SpeedFactor reports passable cells per rectangle for the last build.
	SpeedFactor = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "portalgrid_speed_factor",
		Help: "Passable cells per rectangle in the last build",
	})
)

// Result labels for BuildsTotal.
const (
	ResultOK           = "ok"
	ResultInvalidInput = "invalid_input"
)

// ObserveBuild records a successful build.
func ObserveBuild(s portal.Stats, elapsed time.Duration) {
	BuildsTotal.WithLabelValues(ResultOK).Inc()
	BuildDuration.Observe(elapsed.Seconds())
	Rectangles.Set(float64(s.Rectangles))
	Edges.Set(float64(s.Edges))
	SpeedFactor.Set(s.SpeedFactor)
}

// ObserveFailure records a rejected build.
func ObserveFailure() {
	BuildsTotal.WithLabelValues(ResultInvalidInput).Inc()
}
