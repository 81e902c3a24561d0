package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

const insertTransactionsQuery = `
INSERT INTO explorer_transactions (
	network,
	txid,
	block_hash,
	height,
	position,
	version,
	locktime,
	size,
	vsize,
	weight,
	is_coinbase,
	input_count,
	output_count,
	total_input,
	total_output,
	fee,
	fee_known
) VALUES`

// InsertTransactions stores transaction rows in ClickHouse.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	err = r.insert(ctx, insertTransactionsQuery, len(txs), func(batch Batch, i int) error {
		tx := txs[i]
		return batch.Append(
			string(r.network),
			tx.TxID,
			tx.BlockHash,
			tx.BlockHeight,
			tx.Position,
			tx.Version,
			tx.LockTime,
			tx.Size,
			tx.VSize,
			tx.Weight,
			tx.IsCoinbase,
			tx.InputCount,
			tx.OutputCount,
			tx.TotalInput,
			tx.TotalOutput,
			tx.Fee,
			tx.FeeKnown,
		)
	})
	if err != nil {
		err = fmt.Errorf("insert transactions: %w", err)
	}
	return err
}
