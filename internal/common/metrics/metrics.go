// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistryQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_queries_total",
			Help: "Total number of registry queries by dataset and outcome",
		},
		[]string{"dataset", "dialect", "outcome"},
	)

	StrategySelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_strategy_selected_total",
			Help: "Query strategy that produced each category result",
		},
		[]string{"category", "strategy"},
	)

	CrossValidationDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_crossvalidation_drops_total",
			Help: "Records dropped because their building id disagreed with the bundle",
		},
		[]string{"category"},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "report_generation_duration_seconds",
			Help: "Duration of full report generation in seconds",
		},
		[]string{"jurisdiction"},
	)

	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of reports generated by outcome",
		},
		[]string{"jurisdiction", "outcome"},
	)

	RiskScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_risk_score",
			Help:    "Distribution of computed compliance scores",
			Buckets: []float64{0, 10, 25, 50, 75, 90, 100},
		},
		[]string{"jurisdiction"},
	)
)
