// Package metrics declares the Prometheus instruments for the catalog and
// its query endpoints. Instruments are registered on the default registry at
// init and served by promhttp on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutation results used as the "result" label.
const (
	ResultOK        = "ok"
	ResultNotFound  = "not_found"
	ResultInvalid   = "invalid"
	ResultCollision = "collision"
	ResultError     = "error"
)

var (
	CatalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rebzseven_catalog_mutations_total",
			Help: "Total number of catalog mutations by operation, entity kind and result",
		},
		[]string{"operation", "kind", "result"},
	)

	CatalogEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rebzseven_catalog_entries",
			Help: "Current number of catalog entries by kind",
		},
		[]string{"kind"}, // "movie", "series", "season", "episode"
	)

	FeaturedEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rebzseven_catalog_featured_entries",
			Help: "Current size of the featured view",
		},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rebzseven_query_duration_seconds",
			Help:    "Duration of catalog queries in seconds",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		},
		[]string{"operation"},
	)
)

// RecordMutation counts one catalog mutation.
func RecordMutation(operation, kind, result string) {
	CatalogMutations.WithLabelValues(operation, kind, result).Inc()
}

// SetCatalogSize publishes the size of the current catalog snapshot.
func SetCatalogSize(movies, series, seasons, episodes, featured int) {
	CatalogEntries.WithLabelValues("movie").Set(float64(movies))
	CatalogEntries.WithLabelValues("series").Set(float64(series))
	CatalogEntries.WithLabelValues("season").Set(float64(seasons))
	CatalogEntries.WithLabelValues("episode").Set(float64(episodes))
	FeaturedEntries.Set(float64(featured))
}

// ObserveQuery records the time elapsed since start for a query operation.
func ObserveQuery(operation string, start time.Time) {
	QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
