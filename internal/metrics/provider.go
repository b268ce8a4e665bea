package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/provider"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "query_provider",
		Name:      "operations_total",
		Help:      "Count of entity lookups by data source.",
	}, []string{"operation", "source", "status"})
	providerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "query_provider",
		Name:      "operation_duration_seconds",
		Help:      "Duration of entity lookups by data source.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"operation", "source", "status"})
)

// Provider tracks entity lookups made through one data source.
type Provider struct {
	source string
}

// NewProvider constructs a collector labelled with source.
func NewProvider(source string) *Provider {
	if source == "" {
		source = "unknown"
	}
	return &Provider{source: source}
}

// Observe records a lookup outcome and duration.
func (m Provider) Observe(operation string, err error, started time.Time) {
	status := lookupStatus(err)
	providerRequestsTotal.WithLabelValues(operation, m.source, status).Inc()
	providerRequestDuration.WithLabelValues(operation, m.source, status).Observe(time.Since(started).Seconds())
}

func lookupStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, provider.ErrNotFound):
		return "not_found"
	case errors.Is(err, provider.ErrUnavailable):
		return "unavailable"
	case errors.Is(err, provider.ErrUnsupported):
		return "unsupported"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
