package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kost_operations_total",
			Help: "Total entity operations by name and outcome",
		},
		[]string{"operation", "outcome"},
	)
	ReportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kost_report_build_duration_seconds",
			Help:    "Time spent building the monthly report",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
	)
)

func InitMetrics() {
	if err := prometheus.Register(OperationsTotal); err != nil {
		log.Error().Err(err).Msg("Failed to register OperationsTotal metric")
	}
	if err := prometheus.Register(ReportDuration); err != nil {
		log.Error().Err(err).Msg("Failed to register ReportDuration metric")
	}
}

// ObserveOperation records one operation outcome.
func ObserveOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
}
