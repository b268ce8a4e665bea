package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryEvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "query",
		Name:      "evaluations_total",
		Help:      "Count of query evaluations by outcome.",
	}, []string{"status"})
	queryEvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "query",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of query evaluations.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"status"})
	traversalStepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "query",
		Name:      "traversal_steps_total",
		Help:      "Count of traversal steps by entity and outcome.",
	}, []string{"entity", "outcome"})
)

// Query tracks query evaluations.
type Query struct{}

// NewQuery creates a Query metrics collector.
func NewQuery() *Query {
	return &Query{}
}

// Observe records the outcome of one evaluation.
func (m Query) Observe(status string, started time.Time) {
	queryEvaluationsTotal.WithLabelValues(status).Inc()
	queryEvaluationDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// Traversal tracks evaluator traversal steps.
type Traversal struct{}

// NewTraversal creates a Traversal metrics collector.
func NewTraversal() *Traversal {
	return &Traversal{}
}

// ObserveStep counts one traversal step.
func (m Traversal) ObserveStep(entity, outcome string) {
	traversalStepsTotal.WithLabelValues(entity, outcome).Inc()
}
