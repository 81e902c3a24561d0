// Package service runs the indexing loop on top of the chain cursor.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/cursor"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultIdleInterval = 1 * time.Minute
)

// IndexerConfig holds loop timings. Zero values fall back to defaults.
type IndexerConfig struct {
	PollInterval time.Duration
	IdleInterval time.Duration
}

// IndexerService keeps the index at the node tip until the context is canceled.
type IndexerService struct {
	logger       *zap.Logger
	advancer     Advancer
	metrics      IndexerMetrics
	sleep        func(context.Context, time.Duration) error
	pollInterval time.Duration
	idleInterval time.Duration
	blockSignal  <-chan struct{}
}

// NewIndexerService builds an IndexerService. blockSignal may be nil, in which case
// the loop polls at IdleInterval once it reaches the tip.
func NewIndexerService(
	advancer Advancer,
	metrics IndexerMetrics,
	network model.Network,
	cfg IndexerConfig,
	logger *zap.Logger,
	blockSignal <-chan struct{},
) (*IndexerService, error) {
	if advancer == nil {
		return nil, errors.New("indexer advancer is required")
	}
	if metrics == nil {
		return nil, errors.New("indexer metrics is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = defaultIdleInterval
	}

	return &IndexerService{
		logger:       logger.Named("indexer").With(zap.String("network", string(network))),
		advancer:     advancer,
		metrics:      metrics,
		sleep:        clock.SleepWithContext,
		pollInterval: cfg.PollInterval,
		idleInterval: cfg.IdleInterval,
		blockSignal:  blockSignal,
	}, nil
}

// Run advances the cursor until ctx is canceled or a reorg deeper than the
// configured bound is found. Any other failure is logged and retried after
// PollInterval.
func (s *IndexerService) Run(ctx context.Context) error {
	s.logger.Info("indexer started",
		zap.Duration("poll_interval", s.pollInterval),
		zap.Duration("idle_interval", s.idleInterval),
		zap.Bool("block_signal", s.blockSignal != nil),
	)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			return err
		}
	}
}

func (s *IndexerService) run(ctx context.Context) error {
	started := time.Now()
	outcome, err := s.advancer.Advance(ctx)
	s.metrics.ObserveAdvance(outcome, err, started)

	switch {
	case err == nil && outcome == cursor.OutcomeAtTip:
		s.logger.Debug("at tip; waiting for next block", zap.Duration("sleep", s.idleInterval))
		return s.wait(ctx, s.idleInterval)
	case err == nil:
		return nil
	case errors.Is(err, chain.ErrDeepReorg):
		s.logger.Error("reorg exceeds the configured depth; stopping", zap.Error(err))
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		s.logger.Warn("advance failed, backing off", zap.Error(err), zap.Duration("sleep", s.pollInterval))
		return s.sleep(ctx, s.pollInterval)
	}
}

func (s *IndexerService) wait(ctx context.Context, d time.Duration) error {
	if s.blockSignal == nil {
		return s.sleep(ctx, d)
	}
	return clock.SleepOrSignal(ctx, d, s.blockSignal)
}
