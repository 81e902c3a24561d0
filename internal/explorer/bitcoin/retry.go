package bitcoin

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"go.uber.org/zap"
)

const (
	defaultRetryBaseDelay   = 500 * time.Millisecond
	defaultRetryMaxAttempts = 5
	retryMultiplier         = 2
)

// Retrier re-runs transient RPC failures with exponential backoff.
type Retrier struct {
	baseDelay   time.Duration
	maxAttempts int
	newTimer    func() backoff.Timer
	logger      *zap.Logger
}

// NewRetrier builds a Retrier. Zero values fall back to 500ms base delay and 5 attempts.
func NewRetrier(baseDelay time.Duration, maxAttempts int, logger *zap.Logger) *Retrier {
	if baseDelay <= 0 {
		baseDelay = defaultRetryBaseDelay
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryMaxAttempts
	}
	return &Retrier{
		baseDelay:   baseDelay,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (r *Retrier) backOff(ctx context.Context) backoff.BackOff {
	exp := &backoff.ExponentialBackOff{
		InitialInterval:     r.baseDelay,
		RandomizationFactor: 0,
		Multiplier:          retryMultiplier,
		MaxInterval:         r.baseDelay << r.maxAttempts,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	exp.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(r.maxAttempts-1)), ctx)
}

func (r *Retrier) timer() backoff.Timer {
	if r.newTimer == nil {
		return nil
	}
	return r.newTimer()
}

// retry runs fn until it succeeds, fails with a non-transient error, or attempts run out.
func retry[T any](ctx context.Context, r *Retrier, operation string, fn func(context.Context) (T, error)) (T, error) {
	var res T
	op := func() error {
		value, err := fn(ctx)
		if err != nil {
			if chain.IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		res = value
		return nil
	}
	notify := func(err error, next time.Duration) {
		r.logger.Warn("transient rpc failure, retrying",
			zap.String("operation", operation),
			zap.Duration("backoff", next),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotifyWithTimer(op, r.backOff(ctx), notify, r.timer())
	return res, err
}
