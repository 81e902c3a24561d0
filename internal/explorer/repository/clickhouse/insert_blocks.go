package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

const insertBlocksQuery = `
INSERT INTO explorer_blocks (
	network,
	height,
	hash,
	previous_hash,
	merkleroot,
	timestamp,
	version,
	bits,
	nonce,
	difficulty,
	size,
	weight,
	tx_count,
	total_fees,
	total_output_value,
	reward,
	partial_fee_data
) VALUES`

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	err = r.insert(ctx, insertBlocksQuery, len(blocks), func(batch Batch, i int) error {
		block := blocks[i]
		return batch.Append(
			string(r.network),
			block.Height,
			block.Hash,
			block.PreviousHash,
			block.MerkleRoot,
			block.Timestamp,
			block.Version,
			block.Bits,
			block.Nonce,
			block.Difficulty,
			block.Size,
			block.Weight,
			block.TXCount,
			block.TotalFees,
			block.TotalOutputValue,
			block.Reward,
			block.PartialFeeData,
		)
	})
	if err != nil {
		err = fmt.Errorf("insert blocks: %w", err)
	}
	return err
}

// insert prepares one batch, appends n rows and sends it. The batch is aborted
// when any row fails to append.
func (r *Repository) insert(ctx context.Context, query string, n int, appendRow func(Batch, int) error) error {
	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for i := 0; i < n; i++ {
		if err = appendRow(batch, i); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append row %d: %w", i, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}
