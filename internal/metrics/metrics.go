// Package metrics содержит Prometheus-метрики конвейера подбора заведений.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы генерации объяснений
const (
	ExplanationGenerated   = "generated"
	ExplanationSynthesized = "synthesized"
	ExplanationNoData      = "insufficient_data"
	ExplanationFailed      = "failed"
)

var (
	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lunch_ranking_duration_seconds",
			Help:    "Duration of a full ranking request in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	RankingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunch_ranking_requests_total",
			Help: "Total number of ranking requests by outcome",
		},
		[]string{"outcome"}, // ok, validation_error, search_error
	)

	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunch_search_requests_total",
			Help: "Total number of restaurant search calls",
		},
		[]string{"kind", "outcome"}, // kind: primary, broadened
	)

	NormalizedPlaces = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunch_normalized_places_total",
			Help: "Raw places seen by the normalizer",
		},
		[]string{"result"}, // accepted, rejected
	)

	Explanations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunch_explanations_total",
			Help: "Explanations attached to ranked restaurants by outcome",
		},
		[]string{"outcome"},
	)

	ProfileLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunch_profile_cache_lookups_total",
			Help: "Restaurant profile cache lookups",
		},
		[]string{"result"}, // hit, miss, error
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lunch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	SeededProfiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lunch_seeded_profiles_total",
			Help: "Profiles produced by the seeder",
		},
		[]string{"result"}, // success, failure
	)
)
