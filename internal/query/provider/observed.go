package provider

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

// Observed records metrics for every lookup of the wrapped provider.
type Observed struct {
	next    Provider
	metrics Metrics
}

// NewObserved wraps next with metrics.
func NewObserved(next Provider, metrics Metrics) *Observed {
	return &Observed{next: next, metrics: metrics}
}

// FetchTransaction fetches a transaction and records the outcome.
func (o *Observed) FetchTransaction(ctx context.Context, hash string) (tx *model.Transaction, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe(OperationFetchTransaction, err, started)
	}()
	return o.next.FetchTransaction(ctx, hash)
}

// FetchAddress fetches an address and records the outcome.
func (o *Observed) FetchAddress(ctx context.Context, address string) (addr *model.Address, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe(OperationFetchAddress, err, started)
	}()
	return o.next.FetchAddress(ctx, address)
}
