// Package clock holds the waiting primitives used between provider retries.
package clock

import (
	"context"
	"time"
)

// Backoff returns the wait before retry attempt n, counting from 1.
type Backoff func(attempt int) time.Duration

// Linear waits step times the attempt number.
func Linear(step time.Duration) Backoff {
	return func(attempt int) time.Duration {
		if attempt < 1 || step <= 0 {
			return 0
		}
		return time.Duration(attempt) * step
	}
}

// Sleep waits for d. It returns the context error when ctx ends first, even
// for a zero wait.
func Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
