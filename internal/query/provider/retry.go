package provider

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

// Retrying retries lookups that failed with ErrUnavailable. The wait before
// attempt n is n times the backoff.
type Retrying struct {
	next     Provider
	attempts int
	backoff  clock.Backoff
	sleep    func(context.Context, time.Duration) error
	logger   *zap.Logger
}

// NewRetrying wraps next. attempts below 1 are treated as 1.
func NewRetrying(next Provider, attempts int, backoff time.Duration, logger *zap.Logger) *Retrying {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrying{
		next:     next,
		attempts: attempts,
		backoff:  clock.Linear(backoff),
		sleep:    clock.Sleep,
		logger:   logger,
	}
}

// FetchTransaction fetches a transaction, retrying transient failures.
func (r *Retrying) FetchTransaction(ctx context.Context, hash string) (*model.Transaction, error) {
	return retry(ctx, r, OperationFetchTransaction, hash, func(ctx context.Context) (*model.Transaction, error) {
		return r.next.FetchTransaction(ctx, hash)
	})
}

// FetchAddress fetches an address, retrying transient failures.
func (r *Retrying) FetchAddress(ctx context.Context, address string) (*model.Address, error) {
	return retry(ctx, r, OperationFetchAddress, address, func(ctx context.Context) (*model.Address, error) {
		return r.next.FetchAddress(ctx, address)
	})
}

func retry[T any](ctx context.Context, r *Retrying, operation, key string, fetch func(context.Context) (T, error)) (T, error) {
	var (
		v   T
		err error
	)
	for attempt := 1; ; attempt++ {
		v, err = fetch(ctx)
		if err == nil || !errors.Is(err, ErrUnavailable) || ctx.Err() != nil || attempt == r.attempts {
			return v, err
		}

		wait := r.backoff(attempt)
		r.logger.Warn("provider lookup failed, retrying",
			zap.String("operation", operation),
			zap.String("key", key),
			zap.Int("attempt", attempt),
			zap.Duration("sleep", wait),
			zap.Error(err),
		)
		if sleepErr := r.sleep(ctx, wait); sleepErr != nil {
			return v, sleepErr
		}
	}
}
