package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records planner instrumentation.
type Metrics struct {
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	forecastHorizon  prometheus.Histogram
}

// NewMetrics registers the planner metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		analysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finplan_analyses_total",
				Help: "Total number of analysis runs",
			},
			[]string{"status"},
		),
		analysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finplan_analysis_duration_milliseconds",
				Help:    "Analysis duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			},
		),
		forecastHorizon: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finplan_forecast_horizon_months",
				Help:    "Requested forecast horizons in months",
				Buckets: prometheus.LinearBuckets(1, 3, 10),
			},
		),
	}
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(status string, horizon int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(status).Inc()
	m.analysisDuration.Observe(float64(elapsed.Microseconds()) / 1000.0)
	m.forecastHorizon.Observe(float64(horizon))
}
