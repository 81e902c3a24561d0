// Package mirror copies indexed blocks into the ClickHouse analytics store.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/batcher"
	"go.uber.org/zap"
)

const (
	defaultFlushSize     = 100
	defaultFlushInterval = time.Second
	defaultFlushRPS      = 20
	defaultEnqueueWait   = 100 * time.Millisecond
	defaultRewindTimeout = 30 * time.Second
	defaultCatchUpBatch  = 500
	defaultRetryDelay    = 5 * time.Second
)

// Config tunes batching and catch-up. Zero values fall back to defaults.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	FlushRPS      int
	EnqueueWait   time.Duration
	RewindTimeout time.Duration
	// CatchUpBatch is how many blocks one catch-up step re-reads from the index.
	CatchUpBatch int
	// RetryDelay is the pause after a failed catch-up step.
	RetryDelay time.Duration
}

// Mirror observes the cursor and replicates its writes. Failures are logged and
// measured; they never fail indexing. A dropped block or failed write puts the
// mirror behind, and a background loop re-reads the missing heights from the
// index starting above the highest mirrored block.
type Mirror struct {
	repo          Repository
	source        Source
	queue         Queue
	metrics       Metrics
	logger        *zap.Logger
	enqueueWait   time.Duration
	rewindTimeout time.Duration
	catchUpBatch  int
	retryDelay    time.Duration

	mu sync.Mutex
	// next is the height the live path may enqueue; valid only while synced.
	next   int64
	synced bool
	// pendingRewind holds a fork height whose delete has not succeeded yet.
	pendingRewind *int64

	// failedAt is the lowest height of a failed write not yet seen by catch-up.
	failMu   sync.Mutex
	failedAt *int64

	wake   chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds a Mirror backed by a batcher. Call Start before indexing begins.
func New(repo Repository, source Source, metrics Metrics, cfg Config, logger *zap.Logger) (*Mirror, error) {
	if repo == nil {
		return nil, errors.New("mirror repository is required")
	}
	if source == nil {
		return nil, errors.New("mirror source is required")
	}
	if metrics == nil {
		return nil, errors.New("mirror metrics is required")
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = defaultFlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.FlushRPS <= 0 {
		cfg.FlushRPS = defaultFlushRPS
	}
	if cfg.EnqueueWait <= 0 {
		cfg.EnqueueWait = defaultEnqueueWait
	}
	if cfg.RewindTimeout <= 0 {
		cfg.RewindTimeout = defaultRewindTimeout
	}
	if cfg.CatchUpBatch <= 0 {
		cfg.CatchUpBatch = defaultCatchUpBatch
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	m := newMirror(repo, source, metrics, cfg, logger.Named("mirror"))
	m.queue = batcher.New[*chain.ProcessedBlock](m.logger, m.write, cfg.FlushSize, cfg.FlushInterval, cfg.FlushRPS)
	return m, nil
}

func newMirror(repo Repository, source Source, metrics Metrics, cfg Config, logger *zap.Logger) *Mirror {
	return &Mirror{
		repo:          repo,
		source:        source,
		metrics:       metrics,
		logger:        logger,
		enqueueWait:   cfg.EnqueueWait,
		rewindTimeout: cfg.RewindTimeout,
		catchUpBatch:  cfg.CatchUpBatch,
		retryDelay:    cfg.RetryDelay,
		wake:          make(chan struct{}, 1),
	}
}

// Start runs the flush loop and the catch-up loop until ctx is canceled or Stop is
// called. The first catch-up brings the mirror level with the index.
func (m *Mirror) Start(ctx context.Context) {
	m.queue.Start(ctx)

	followCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.signal()
	m.wg.Add(1)
	go m.follow(followCtx)
}

// Stop ends catch-up, flushes what is queued and stops the flush loop.
func (m *Mirror) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.queue.Stop()
}

// StateChanged is part of the cursor observer set; the mirror does not track state.
func (m *Mirror) StateChanged(model.CursorState, model.CursorState) {}

// BlockIndexed queues a committed block when the mirror is level with the index.
// Otherwise the block is left to catch-up.
func (m *Mirror) BlockIndexed(ctx context.Context, pb *chain.ProcessedBlock) {
	m.mu.Lock()
	defer m.mu.Unlock()

	height := pb.Block.Height
	if m.synced && height < m.next {
		return
	}
	if !m.synced || height != m.next || m.writeFailed() {
		m.fallBehind()
		return
	}

	started := time.Now()
	addCtx, cancel := context.WithTimeout(ctx, m.enqueueWait)
	defer cancel()

	err := m.queue.Add(addCtx, pb)
	m.metrics.ObserveMirror("enqueue", err, started)
	if err != nil {
		m.logger.Warn("mirror queue unavailable; block left to catch-up",
			zap.Int64("height", height),
			zap.String("hash", pb.Block.Hash),
			zap.Error(err),
		)
		m.fallBehind()
		return
	}
	m.next = height + 1
}

// Rewound writes everything queued so far and then removes mirrored rows above
// the fork. A failed delete is retried by catch-up.
func (m *Mirror) Rewound(ctx context.Context, forkHeight, depth int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	started := time.Now()
	rewindCtx, cancel := context.WithTimeout(ctx, m.rewindTimeout)
	defer cancel()

	err := m.rewind(rewindCtx, forkHeight)
	m.metrics.ObserveMirror("rewind", err, started)
	if err != nil {
		m.logger.Error("mirror rewind failed",
			zap.Int64("fork_height", forkHeight),
			zap.Int64("depth", depth),
			zap.Error(err),
		)
		m.deferRewind(forkHeight)
		m.fallBehind()
		return
	}
	if m.next > forkHeight+1 {
		m.next = forkHeight + 1
	}
	m.logger.Info("mirror rewound", zap.Int64("fork_height", forkHeight), zap.Int64("depth", depth))
}

func (m *Mirror) rewind(ctx context.Context, forkHeight int64) error {
	if err := m.queue.Flush(ctx); err != nil {
		return fmt.Errorf("flush pending blocks: %w", err)
	}
	if err := m.repo.DeleteAboveHeight(ctx, forkHeight); err != nil {
		return fmt.Errorf("delete above %d: %w", forkHeight, err)
	}
	return nil
}

// deferRewind must be called with mu held.
func (m *Mirror) deferRewind(forkHeight int64) {
	if m.pendingRewind == nil || forkHeight < *m.pendingRewind {
		m.pendingRewind = &forkHeight
	}
}

// fallBehind must be called with mu held.
func (m *Mirror) fallBehind() {
	m.synced = false
	m.signal()
}

func (m *Mirror) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// markFailed runs on the flush goroutine, which may be serving a Flush issued
// under mu, so it only takes failMu.
func (m *Mirror) markFailed(height int64) {
	m.failMu.Lock()
	if m.failedAt == nil || height < *m.failedAt {
		m.failedAt = &height
	}
	m.failMu.Unlock()
	m.signal()
}

func (m *Mirror) writeFailed() bool {
	m.failMu.Lock()
	defer m.failMu.Unlock()
	return m.failedAt != nil
}

func (m *Mirror) takeFailed() *int64 {
	m.failMu.Lock()
	defer m.failMu.Unlock()
	failedAt := m.failedAt
	m.failedAt = nil
	return failedAt
}

func (m *Mirror) follow(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.wake:
		}

		for {
			started := time.Now()
			done, err := m.catchUp(ctx)
			m.metrics.ObserveMirror("catch_up", err, started)
			if err == nil && done {
				break
			}
			if err != nil {
				m.logger.Warn("mirror catch-up failed", zap.Error(err), zap.Duration("retry_in", m.retryDelay))
				if err := clock.SleepWithContext(ctx, m.retryDelay); err != nil {
					return
				}
			}
		}
	}
}

// catchUp queues at most one batch of blocks the mirror is missing and reports
// whether the mirror is now level with the index.
func (m *Mirror) catchUp(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.queue.Flush(ctx); err != nil {
		return false, fmt.Errorf("flush pending blocks: %w", err)
	}
	// Rows above a failed batch may have landed; drop them so the mirrored
	// height stays contiguous.
	if failedAt := m.takeFailed(); failedAt != nil {
		m.deferRewind(*failedAt - 1)
	}
	if m.pendingRewind != nil {
		if err := m.repo.DeleteAboveHeight(ctx, *m.pendingRewind); err != nil {
			return false, fmt.Errorf("delete above %d: %w", *m.pendingRewind, err)
		}
		m.pendingRewind = nil
	}

	mirrored, err := m.repo.MaxBlockHeight(ctx)
	if err != nil {
		return false, fmt.Errorf("mirrored height: %w", err)
	}
	cur, err := m.source.Cursor(ctx)
	if err != nil {
		return false, fmt.Errorf("index cursor: %w", err)
	}
	if mirrored > cur.Height {
		if err := m.repo.DeleteAboveHeight(ctx, cur.Height); err != nil {
			return false, fmt.Errorf("delete above %d: %w", cur.Height, err)
		}
		mirrored = cur.Height
	}

	last := min(cur.Height, mirrored+int64(m.catchUpBatch))
	for height := mirrored + 1; height <= last; height++ {
		pb, err := m.source.ProcessedBlock(ctx, height)
		if err != nil {
			return false, fmt.Errorf("read block %d: %w", height, err)
		}
		if err := m.queue.Add(ctx, pb); err != nil {
			return false, fmt.Errorf("queue block %d: %w", height, err)
		}
	}
	if last > mirrored {
		m.logger.Info("mirror catching up",
			zap.Int64("from", mirrored+1),
			zap.Int64("to", last),
			zap.Int64("index_height", cur.Height),
		)
	}

	if last < cur.Height {
		return false, nil
	}
	m.next = cur.Height + 1
	m.synced = true
	return true, nil
}

// write inserts child rows before block rows, so a mirrored block row implies its
// transactions are present.
func (m *Mirror) write(ctx context.Context, items []*chain.ProcessedBlock) (err error) {
	started := time.Now()
	var lowest int64
	defer func() {
		m.metrics.ObserveMirror("write", err, started)
		if err != nil && len(items) > 0 {
			m.markFailed(lowest)
		}
	}()

	var (
		blocks  = make([]model.Block, 0, len(items))
		txs     []model.Transaction
		inputs  []model.TransactionInput
		outputs []model.TransactionOutput
	)
	for i, pb := range items {
		if i == 0 || pb.Block.Height < lowest {
			lowest = pb.Block.Height
		}
		blocks = append(blocks, pb.Block)
		txs = append(txs, pb.Txs...)
		inputs = append(inputs, pb.Inputs...)
		outputs = append(outputs, pb.Outputs...)
	}

	if err := m.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
		return err
	}
	if err := m.repo.InsertTransactionInputs(ctx, inputs); err != nil {
		return err
	}
	if err := m.repo.InsertTransactions(ctx, txs); err != nil {
		return err
	}
	if err := m.repo.InsertBlocks(ctx, blocks); err != nil {
		return err
	}
	m.logger.Debug("blocks mirrored",
		zap.Int64("from", items[0].Block.Height),
		zap.Int64("to", items[len(items)-1].Block.Height),
	)
	return nil
}
