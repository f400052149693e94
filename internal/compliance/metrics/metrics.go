package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for compliance evaluation and rebates.
type Metrics struct {
	Evaluations        *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	RecomputeFailures  prometheus.Counter
	RecomputeDropped   prometheus.Counter
	RebateCacheHits    prometheus.Counter
	RebateCacheMisses  prometheus.Counter
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the compliance metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "greentax_compliance_evaluations_total",
			Help: "Compliance evaluations by resulting tier",
		}, []string{"tier"}),
		EvaluationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "greentax_compliance_evaluation_duration_seconds",
			Help:    "Duration of a single compliance evaluation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		RecomputeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "greentax_compliance_recompute_failures_total",
			Help: "Background compliance recomputes that returned an error",
		}),
		RecomputeDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "greentax_compliance_recompute_dropped_total",
			Help: "Background compliance recomputes dropped because the queue was full",
		}),
		RebateCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "greentax_rebate_cache_hits_total",
			Help: "Rebate lookups served from cache",
		}),
		RebateCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "greentax_rebate_cache_misses_total",
			Help: "Rebate lookups that missed the cache",
		}),
	}
}

func (m *Metrics) ObserveEvaluation(tier string, d time.Duration) {
	if m == nil {
		return
	}
	m.Evaluations.WithLabelValues(tier).Inc()
	m.EvaluationDuration.Observe(d.Seconds())
}

func (m *Metrics) IncrementRecomputeFailure() {
	if m != nil {
		m.RecomputeFailures.Inc()
	}
}

func (m *Metrics) IncrementRecomputeDropped() {
	if m != nil {
		m.RecomputeDropped.Inc()
	}
}

func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.RebateCacheHits.Inc()
	}
}

func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.RebateCacheMisses.Inc()
	}
}
