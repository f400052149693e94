package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the proof module.
type Metrics struct {
	// Verdicts by status and the check that decided them
	Verdicts *prometheus.CounterVec

	// Manual review outcomes
	Reviews *prometheus.CounterVec

	// Uploads that lost the fingerprint race at write time
	DuplicateRaces prometheus.Counter

	// End-to-end submit latency including image storage
	SubmitLatency prometheus.Histogram
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the proof metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greentax_proof_verdicts_total",
			Help: "Validation verdicts by status",
		}, []string{"status"}),

		Reviews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greentax_proof_reviews_total",
			Help: "Manual proof reviews by resulting status",
		}, []string{"status"}),

		DuplicateRaces: factory.NewCounter(prometheus.CounterOpts{
			Name: "greentax_proof_duplicate_races_total",
			Help: "Uploads that passed the read-time duplicate check but hit the fingerprint constraint on write",
		}),

		SubmitLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "greentax_proof_submit_duration_seconds",
			Help:    "Duration of proof submission including storage and validation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementVerdict records a validation verdict.
func (m *Metrics) IncrementVerdict(status string) {
	if m != nil {
		m.Verdicts.WithLabelValues(status).Inc()
	}
}

// IncrementReview records a manual review outcome.
func (m *Metrics) IncrementReview(status string) {
	if m != nil {
		m.Reviews.WithLabelValues(status).Inc()
	}
}

// IncrementDuplicateRace records a write-time duplicate detection.
func (m *Metrics) IncrementDuplicateRace() {
	if m != nil {
		m.DuplicateRaces.Inc()
	}
}

// ObserveSubmitLatency records the total submit duration.
func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}
