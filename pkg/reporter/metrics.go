package reporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reporterLoadsTotal counts successfully loaded reporters by type.
	reporterLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metrics_reporter_loads_total",
			Help: "Total number of reporters loaded by plugin type",
		},
		[]string{"type"},
	)

	// reporterLoadFailuresTotal counts reporters that failed to start.
	reporterLoadFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metrics_reporter_load_failures_total",
			Help: "Total number of reporter load failures by plugin type",
		},
		[]string{"type"},
	)

	// reporterClosesTotal counts closed reporters.
	reporterClosesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metrics_reporter_closes_total",
			Help: "Total number of reporters closed",
		},
	)

	// reporterCloseFailuresTotal counts close calls that returned an error.
	reporterCloseFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metrics_reporter_close_failures_total",
			Help: "Total number of reporter close failures",
		},
	)

	// reportersActive tracks currently running reporters.
	reportersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "metrics_reporters_active",
			Help: "Number of currently running reporters",
		},
	)
)
