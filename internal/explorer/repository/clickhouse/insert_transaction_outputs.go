package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

const insertTransactionOutputsQuery = `
INSERT INTO explorer_transaction_outputs (
	network,
	txid,
	height,
	output_index,
	value,
	script_hex,
	script_type,
	address,
	is_coinbase
) VALUES`

// InsertTransactionOutputs stores output rows in ClickHouse.
func (r *Repository) InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transaction_outputs", err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	err = r.insert(ctx, insertTransactionOutputsQuery, len(outputs), func(batch Batch, i int) error {
		out := outputs[i]
		return batch.Append(
			string(r.network),
			out.TxID,
			out.BlockHeight,
			out.Index,
			out.Value,
			out.ScriptHex,
			string(out.ScriptType),
			out.Address,
			out.IsCoinbase,
		)
	})
	if err != nil {
		err = fmt.Errorf("insert transaction outputs: %w", err)
	}
	return err
}
