package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TelemetryIngested counts readings accepted and persisted, by kind.
	TelemetryIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voltgrid_telemetry_ingested_total",
			Help: "Total number of telemetry readings ingested.",
		},
		[]string{"kind"}, // kind: vehicle/meter
	)

	// TelemetryRejected counts payloads refused before any write, by reason.
	TelemetryRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voltgrid_telemetry_rejected_total",
			Help: "Total number of telemetry payloads rejected at validation.",
		},
		[]string{"reason"}, // reason: unknown_kind/ambiguous/invalid_field
	)

	// PerformanceQueryDuration tracks the latency of 24h performance summaries.
	PerformanceQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "voltgrid_performance_query_duration_seconds",
			Help:    "Latency of vehicle performance summary queries.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Rejection reasons used as label values.
const (
	ReasonUnknownKind  = "unknown_kind"
	ReasonAmbiguous    = "ambiguous"
	ReasonInvalidField = "invalid_field"
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(TelemetryIngested)
	registry.MustRegister(TelemetryRejected)
	registry.MustRegister(PerformanceQueryDuration)
}

// Handler exposes the service collectors for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
