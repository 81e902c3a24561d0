// Package cursor drives indexing one block at a time and recovers from reorganizations.
package cursor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"go.uber.org/zap"
)

// DefaultMaxReorgDepth bounds how many blocks recovery may remove.
const DefaultMaxReorgDepth int64 = 100

// Outcome reports what a single Advance did.
type Outcome int

const (
	// OutcomeAtTip means the index already holds the node's best block.
	OutcomeAtTip Outcome = iota
	// OutcomeIndexed means one block was written.
	OutcomeIndexed
	// OutcomeReorgDetected means the next block did not link to the stored tip; the
	// following Advance runs recovery.
	OutcomeReorgDetected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAtTip:
		return "at_tip"
	case OutcomeIndexed:
		return "indexed"
	case OutcomeReorgDetected:
		return "reorg_detected"
	default:
		return "unknown"
	}
}

// Config tunes the cursor.
type Config struct {
	MaxReorgDepth int64
	// StartHeight is the first height indexed into an empty store.
	StartHeight int64
}

// Cursor owns the indexing position. Advance calls are serialized.
type Cursor struct {
	node      Node
	processor Processor
	store     Store
	observers []Observer
	logger    *zap.Logger

	maxReorgDepth int64
	startHeight   int64

	mu     sync.Mutex
	loaded bool

	stateMu sync.RWMutex
	state   model.CursorState
	height  int64
	hash    string
}

// New constructs a Cursor. Load runs lazily on the first Advance.
func New(node Node, processor Processor, store Store, cfg Config, logger *zap.Logger, observers ...Observer) *Cursor {
	if cfg.MaxReorgDepth <= 0 {
		cfg.MaxReorgDepth = DefaultMaxReorgDepth
	}
	if cfg.StartHeight < 0 {
		cfg.StartHeight = 0
	}
	return &Cursor{
		node:          node,
		processor:     processor,
		store:         store,
		observers:     observers,
		logger:        logger.Named("cursor"),
		maxReorgDepth: cfg.MaxReorgDepth,
		startHeight:   cfg.StartHeight,
		state:         model.CursorIdle,
		height:        model.GenesisNotIndexed,
	}
}

// Snapshot returns the current position and state.
func (c *Cursor) Snapshot() model.Cursor {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return model.Cursor{Height: c.height, Hash: c.hash, State: c.state}
}

// State returns the current indexing state.
func (c *Cursor) State() model.CursorState {
	return c.Snapshot().State
}

// Load restores the position persisted by the store.
func (c *Cursor) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Cursor) load(ctx context.Context) error {
	stored, err := c.store.Cursor(ctx)
	if err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}
	c.setPosition(stored.Height, stored.Hash)
	c.loaded = true
	c.logger.Info("cursor loaded", zap.Int64("height", stored.Height), zap.String("hash", stored.Hash))
	return nil
}

// Advance indexes at most one block. Calling it at the node tip is a no-op.
// A reorg is detected in one call and recovered in the next; recovery deeper than
// the configured bound fails with chain.ErrDeepReorg and leaves the cursor in Error.
func (c *Cursor) Advance(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		if err := c.load(ctx); err != nil {
			return OutcomeAtTip, c.fail(ctx, err)
		}
	}

	if c.State() == model.CursorReorgRecovery {
		if err := c.recover(ctx); err != nil {
			return OutcomeAtTip, c.fail(ctx, err)
		}
	}

	c.setState(model.CursorFetching)
	nodeHeight, err := c.node.FetchCurrentHeight(ctx)
	if err != nil {
		return OutcomeAtTip, c.fail(ctx, fmt.Errorf("fetch node height: %w", err))
	}

	pos := c.Snapshot()
	next := pos.Height + 1
	if pos.Hash == "" {
		next = max(next, c.startHeight)
	}
	if next > nodeHeight {
		return c.checkTip(ctx, pos, nodeHeight)
	}

	raw, err := c.node.FetchBlockAtHeight(ctx, next)
	if err != nil {
		return OutcomeAtTip, c.fail(ctx, fmt.Errorf("fetch block %d: %w", next, err))
	}
	if pos.Hash != "" && raw.PreviousHash != pos.Hash {
		c.enterRecovery(raw.Height, raw.Hash, raw.PreviousHash, pos)
		return OutcomeReorgDetected, nil
	}

	c.setState(model.CursorProcessing)
	pb, err := c.processor.Process(ctx, raw)
	if err != nil {
		return OutcomeAtTip, c.fail(ctx, fmt.Errorf("process block %d %s: %w", raw.Height, raw.Hash, err))
	}
	if err := c.store.WriteBlock(ctx, pb); err != nil {
		if errors.Is(err, chain.ErrChainLinkage) {
			c.enterRecovery(raw.Height, raw.Hash, raw.PreviousHash, pos)
			return OutcomeReorgDetected, nil
		}
		return OutcomeAtTip, c.fail(ctx, fmt.Errorf("write block %d %s: %w", raw.Height, raw.Hash, err))
	}

	c.setPosition(pb.Block.Height, pb.Block.Hash)
	for _, o := range c.observers {
		o.BlockIndexed(ctx, pb)
	}
	c.setState(model.CursorIdle)
	return OutcomeIndexed, nil
}

// checkTip confirms the indexed tip is still on the node's chain when there is nothing
// new to fetch. A node that switched to a shorter branch is caught here.
func (c *Cursor) checkTip(ctx context.Context, pos model.Cursor, nodeHeight int64) (Outcome, error) {
	if pos.Hash == "" || nodeHeight < 0 {
		c.setState(model.CursorIdle)
		return OutcomeAtTip, nil
	}

	height := min(pos.Height, nodeHeight)
	canonical, err := c.node.FetchBlockHash(ctx, height)
	if err != nil {
		return OutcomeAtTip, c.fail(ctx, fmt.Errorf("fetch node hash at %d: %w", height, err))
	}
	stored := pos.Hash
	if height != pos.Height {
		if stored, err = c.store.BlockHashAtHeight(ctx, height); err != nil {
			return OutcomeAtTip, c.fail(ctx, fmt.Errorf("stored hash at %d: %w", height, err))
		}
	}
	if canonical != stored {
		c.enterRecovery(height, canonical, "", pos)
		return OutcomeReorgDetected, nil
	}

	c.setState(model.CursorIdle)
	return OutcomeAtTip, nil
}

func (c *Cursor) enterRecovery(height int64, hash, previousHash string, pos model.Cursor) {
	c.logger.Warn("node chain diverges from indexed tip",
		zap.Int64("height", height),
		zap.String("hash", hash),
		zap.String("previous_hash", previousHash),
		zap.Int64("tip_height", pos.Height),
		zap.String("tip_hash", pos.Hash),
	)
	c.setState(model.CursorReorgRecovery)
}

// recover walks back from min(local tip, node tip) until the stored and node hashes
// agree, removes every stored block above that fork point and resumes fetching.
func (c *Cursor) recover(ctx context.Context) error {
	pos := c.Snapshot()
	nodeHeight, err := c.node.FetchCurrentHeight(ctx)
	if err != nil {
		return fmt.Errorf("reorg recovery: fetch node height: %w", err)
	}

	fork := model.GenesisNotIndexed
	for height := min(pos.Height, nodeHeight); height >= 0; height-- {
		if pos.Height-height > c.maxReorgDepth {
			return fmt.Errorf("%w: no common ancestor within %d blocks of %d", chain.ErrDeepReorg, c.maxReorgDepth, pos.Height)
		}
		stored, err := c.store.BlockHashAtHeight(ctx, height)
		if errors.Is(err, chain.ErrNotFound) {
			// Nothing indexed this low; everything above is replaced.
			fork = height
			break
		}
		if err != nil {
			return fmt.Errorf("reorg recovery: stored hash at %d: %w", height, err)
		}
		canonical, err := c.node.FetchBlockHash(ctx, height)
		if err != nil {
			return fmt.Errorf("reorg recovery: node hash at %d: %w", height, err)
		}
		if stored == canonical {
			fork = height
			break
		}
	}

	depth := pos.Height - fork
	if depth > c.maxReorgDepth {
		return fmt.Errorf("%w: fork at %d is %d blocks below %d", chain.ErrDeepReorg, fork, depth, pos.Height)
	}
	if depth == 0 {
		c.logger.Warn("reorg recovery found no divergence, refetching", zap.Int64("height", pos.Height))
		return nil
	}

	if err := c.store.MarkNonCanonical(ctx, fork+1, pos.Height); err != nil {
		return fmt.Errorf("reorg recovery: remove blocks above %d: %w", fork, err)
	}
	stored, err := c.store.Cursor(ctx)
	if err != nil {
		return fmt.Errorf("reorg recovery: reload cursor: %w", err)
	}
	c.setPosition(stored.Height, stored.Hash)

	c.logger.Warn("reorg recovered",
		zap.Int64("fork_height", fork),
		zap.Int64("depth", depth),
		zap.Int64("previous_tip", pos.Height),
	)
	for _, o := range c.observers {
		o.Rewound(ctx, fork, depth)
	}
	return nil
}

// fail moves the cursor to Error and returns err. Shutdown is not an error state.
func (c *Cursor) fail(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		c.setState(model.CursorIdle)
		return err
	}
	c.setState(model.CursorError)
	return err
}

func (c *Cursor) setPosition(height int64, hash string) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.height = height
	c.hash = hash
}

func (c *Cursor) setState(to model.CursorState) {
	c.stateMu.Lock()
	from := c.state
	c.state = to
	c.stateMu.Unlock()

	if from == to {
		return
	}
	c.logger.Debug("cursor state changed", zap.String("from", string(from)), zap.String("to", string(to)))
	for _, o := range c.observers {
		o.StateChanged(from, to)
	}
}
