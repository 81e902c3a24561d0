// Package clock provides context-aware waiting.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or returns early with the context error.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return SleepOrSignal(ctx, d, nil)
}

// SleepOrSignal waits for d, for a value on signal or for ctx to end, whichever
// comes first. Only the context ending is an error. A nil signal never fires.
func SleepOrSignal(ctx context.Context, d time.Duration, signal <-chan struct{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-timer.C:
		return nil
	}
}
