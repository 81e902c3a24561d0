package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

const insertTransactionInputsQuery = `
INSERT INTO explorer_transaction_inputs (
	network,
	txid,
	height,
	input_index,
	is_coinbase,
	prev_txid,
	prev_vout,
	script_sig_hex,
	sequence,
	witness,
	resolved,
	value,
	address
) VALUES`

// InsertTransactionInputs stores input rows in ClickHouse.
func (r *Repository) InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transaction_inputs", err, start)
	}()

	if len(inputs) == 0 {
		return nil
	}

	err = r.insert(ctx, insertTransactionInputsQuery, len(inputs), func(batch Batch, i int) error {
		in := inputs[i]
		witness := in.Witness
		if witness == nil {
			witness = []string{}
		}
		return batch.Append(
			string(r.network),
			in.TxID,
			in.BlockHeight,
			in.Index,
			in.IsCoinbase,
			in.PrevOut.TxID,
			in.PrevOut.Index,
			in.ScriptSigHex,
			in.Sequence,
			witness,
			in.Resolved,
			in.Value,
			in.Address,
		)
	})
	if err != nil {
		err = fmt.Errorf("insert transaction inputs: %w", err)
	}
	return err
}
