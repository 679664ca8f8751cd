// Package metrics exposes Prometheus collectors for the settlement service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	rpcRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "settlement",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of RPC calls handled.",
		},
		[]string{"procedure", "code"},
	)

	rpcDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "settlement",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPC calls.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"procedure"},
	)

	calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "settlement",
			Subsystem: "engine",
			Name:      "calculations_total",
			Help:      "Total number of settlement calculations by contract schema.",
		},
		[]string{"schema"},
	)

	shareResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "settlement",
			Subsystem: "engine",
			Name:      "share_resolutions_total",
			Help:      "Resolved share pairs by classification and source.",
		},
		[]string{"classification", "source"},
	)

	settlementsSaved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "settlement",
			Subsystem: "ledger",
			Name:      "settlements_saved_total",
			Help:      "Total number of confirmed settlements persisted.",
		},
	)

	payoutsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "settlement",
			Subsystem: "ledger",
			Name:      "payouts_recorded_total",
			Help:      "Total number of payouts recorded.",
		},
	)
)

func init() {
	Registry.MustRegister(
		rpcRequests,
		rpcDuration,
		calculations,
		shareResolutions,
		settlementsSaved,
		payoutsRecorded,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRPC records the outcome of one RPC call. code is "ok" on success.
func RecordRPC(procedure, code string, duration time.Duration) {
	rpcRequests.WithLabelValues(procedure, code).Inc()
	rpcDuration.WithLabelValues(procedure).Observe(duration.Seconds())
}

// RecordCalculation counts one settlement calculation.
func RecordCalculation(schema string) {
	if schema == "" {
		schema = "none"
	}
	calculations.WithLabelValues(schema).Inc()
}

// RecordShareResolution counts where a resolved share pair came from.
func RecordShareResolution(classification, source string) {
	shareResolutions.WithLabelValues(classification, source).Inc()
}

// RecordSettlementSaved counts one persisted settlement.
func RecordSettlementSaved() {
	settlementsSaved.Inc()
}

// RecordPayout counts one recorded payout.
func RecordPayout() {
	payoutsRecorded.Inc()
}
