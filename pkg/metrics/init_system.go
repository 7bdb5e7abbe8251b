package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSystemMetrics() {
	r.CatalogCompounds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pfdcheck_catalog_compounds",
			Help: "Number of compounds in the loaded catalog",
		},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "pfdcheck_last_run_timestamp_seconds",
			Help: "Unix time of the last completed validation run",
		},
	)
}
