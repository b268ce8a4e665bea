// Package workerpool runs a function over a slice with bounded concurrency.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Map calls fn for every item using at most workers goroutines and returns the
// results in input order. The first error cancels the context seen by the
// remaining calls and is returned.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	out := make([]R, len(items))
	run(ctx, workers, len(items), func(ctx context.Context, i int) {
		v, err := fn(ctx, items[i])
		if err != nil {
			cancel(err)
			return
		}
		out[i] = v
	})
	if err := context.Cause(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// Each calls fn for every item and does not stop when a call fails; fn reports
// its own outcome. Items are handed out in order, so once ctx ends the items
// never started form a tail of the slice. Each returns the index of the first
// of them, or len(items) when every item ran.
func Each[T any](ctx context.Context, workers int, items []T, fn func(ctx context.Context, i int, item T)) int {
	return run(ctx, workers, len(items), func(ctx context.Context, i int) {
		fn(ctx, i, items[i])
	})
}

func run(ctx context.Context, workers, n int, fn func(context.Context, int)) int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var (
		next    atomic.Int64
		started atomic.Int64
		wg      sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				started.Add(1)
				fn(ctx, i)
			}
		}()
	}
	wg.Wait()
	return int(started.Load())
}
