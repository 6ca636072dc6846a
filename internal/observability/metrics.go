// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Cycle metrics
	CyclesTotal   prometheus.Counter
	CycleDuration prometheus.Histogram

	// Pre-filter metrics
	CandidatesEvaluated prometheus.Counter
	CandidatesPassed    prometheus.Counter
	CandidatesFiltered  *prometheus.CounterVec // by reason

	// Analysis metrics
	StepsTotal   *prometheus.CounterVec // by step, outcome
	CacheEntries prometheus.Gauge

	// Scoring metrics
	ScoresComputed prometheus.Counter
	ScoreHistogram prometheus.Histogram
	DegradedScores prometheus.Counter
	FindingsTotal  *prometheus.CounterVec // by type, rule

	// Alerting metrics
	AlertsFired prometheus.Counter
}

// NewMetrics creates a Metrics instance with all metrics registered on the
// default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "token_radar"
	}

	return &Metrics{
		CyclesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Completed scan cycles.",
		}),
		CycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one scan cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		CandidatesEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_evaluated_total",
			Help:      "Candidates seen by the pre-filter.",
		}),
		CandidatesPassed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_passed_total",
			Help:      "Candidates that survived the pre-filter.",
		}),
		CandidatesFiltered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_filtered_total",
			Help:      "Candidates rejected by the pre-filter.",
		}, []string{"reason"}),
		StepsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_steps_total",
			Help:      "Analysis step executions.",
		}, []string{"step", "outcome"}),
		CacheEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Entries in the per-cycle token data cache at cycle end.",
		}),
		ScoresComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_computed_total",
			Help:      "Conviction scores computed.",
		}),
		ScoreHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score_distribution",
			Help:      "Distribution of final conviction scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		DegradedScores: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_scores_total",
			Help:      "Scores computed in degraded fallback mode.",
		}),
		FindingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interaction_findings_total",
			Help:      "Interaction findings emitted by the scoring engine.",
		}, []string{"type", "rule"}),
		AlertsFired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_fired_total",
			Help:      "Conviction alerts delivered to the sink.",
		}),
	}
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
