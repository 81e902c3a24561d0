package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"go.uber.org/zap"
)

// WriteBlock persists a processed block with its transactions, inputs, outputs, spend
// markers, address aggregates and the advanced cursor in one atomic batch.
// Writing the same block twice is a no-op. A block that does not extend the stored tip
// is rejected with chain.ErrChainLinkage.
func (s *Store) WriteBlock(ctx context.Context, pb *chain.ProcessedBlock) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("write_block", err, started)
	}()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	block := pb.Block
	if block.Height < 0 || block.Hash == "" {
		return fmt.Errorf("%w: block %d %q", chain.ErrChainLinkage, block.Height, block.Hash)
	}

	canonical, found, err := getString(s.db, heightKey(block.Height))
	if err != nil {
		return err
	}
	if found && canonical == block.Hash {
		return nil
	}

	cur, err := readCursor(s.db)
	if err != nil {
		return err
	}
	if cur.Hash != "" && (block.Height != cur.Height+1 || block.PreviousHash != cur.Hash) {
		return fmt.Errorf("%w: block %d %s (prev %s) does not extend tip %d %s",
			chain.ErrChainLinkage, block.Height, block.Hash, block.PreviousHash, cur.Height, cur.Hash)
	}

	batch := s.db.NewIndexedBatch()
	defer batch.Close()

	if err := stageBlock(batch, pb); err != nil {
		return err
	}
	if err := setJSON(batch, []byte(keyCursor), model.Cursor{
		Height: block.Height,
		Hash:   block.Hash,
		State:  model.CursorIdle,
	}); err != nil {
		return err
	}

	// Shutdown before commit drops the whole block.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := batch.Commit(s.writeOpts); err != nil {
		return storageErr("commit block", err)
	}

	s.logger.Debug("block written",
		zap.Int64("height", block.Height),
		zap.String("hash", block.Hash),
		zap.Int("txs", len(pb.Txs)),
	)
	return nil
}

// MarkNonCanonical removes the blocks in [fromHeight, toHeight] from the index, highest
// first, reverting spend markers and address aggregates, and moves the cursor to
// fromHeight-1. Heights without a stored block are skipped.
func (s *Store) MarkNonCanonical(ctx context.Context, fromHeight, toHeight int64) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("mark_non_canonical", err, started)
	}()

	if fromHeight < 0 || fromHeight > toHeight {
		return fmt.Errorf("invalid height range [%d, %d]", fromHeight, toHeight)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	batch := s.db.NewIndexedBatch()
	defer batch.Close()

	for height := toHeight; height >= fromHeight; height-- {
		hash, found, err := getString(batch, heightKey(height))
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		if err := unstageBlock(batch, height, hash); err != nil {
			return fmt.Errorf("remove block %d %s: %w", height, hash, err)
		}
	}

	cur := model.Cursor{Height: model.GenesisNotIndexed, State: model.CursorIdle}
	if fromHeight > 0 {
		hash, found, err := getString(batch, heightKey(fromHeight-1))
		if err != nil {
			return err
		}
		if found {
			cur.Height = fromHeight - 1
			cur.Hash = hash
		}
	}
	if err := setJSON(batch, []byte(keyCursor), cur); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := batch.Commit(s.writeOpts); err != nil {
		return storageErr("commit rewind", err)
	}

	s.logger.Info("blocks removed from canonical chain",
		zap.Int64("from_height", fromHeight),
		zap.Int64("to_height", toHeight),
		zap.Int64("cursor_height", cur.Height),
	)
	return nil
}

func stageBlock(batch *pebble.Batch, pb *chain.ProcessedBlock) error {
	block := pb.Block
	if err := setJSON(batch, blockKey(block.Hash), block); err != nil {
		return err
	}
	if err := batch.Set(heightKey(block.Height), []byte(block.Hash), nil); err != nil {
		return storageErr("set height index", err)
	}

	positions := make(map[string]uint32, len(pb.Txs))
	for _, tx := range pb.Txs {
		positions[tx.TxID] = tx.Position
		if err := setJSON(batch, txKey(tx.TxID), tx); err != nil {
			return err
		}
		if err := batch.Set(blockTxKey(block.Height, tx.Position), []byte(tx.TxID), nil); err != nil {
			return storageErr("set block tx", err)
		}
	}

	activity := newAddressActivity()
	for _, out := range pb.Outputs {
		if err := setJSON(batch, outputKey(out.TxID, out.Index), out); err != nil {
			return err
		}
		activity.receive(out.Address, out.TxID, positions[out.TxID], out.Value)
	}
	for _, in := range pb.Inputs {
		if err := setJSON(batch, inputKey(in.TxID, in.Index), in); err != nil {
			return err
		}
		if in.IsCoinbase {
			continue
		}
		if err := setJSON(batch, spendKey(in.PrevOut), model.OutPoint{TxID: in.TxID, Index: in.Index}); err != nil {
			return err
		}
		if in.Resolved {
			activity.spend(in.Address, in.TxID, positions[in.TxID], in.Value)
		}
	}
	return activity.apply(batch, block.Height)
}

func unstageBlock(batch *pebble.Batch, height int64, hash string) error {
	type blockTx struct {
		key  []byte
		txid string
	}
	var txs []blockTx
	err := scan(batch, blockTxPrefix(height), false, func(key, value []byte) (bool, error) {
		txs = append(txs, blockTx{key: append([]byte(nil), key...), txid: string(value)})
		return true, nil
	})
	if err != nil {
		return err
	}

	activity := newAddressActivity()
	for i := len(txs) - 1; i >= 0; i-- {
		if err := deleteKey(batch, txs[i].key); err != nil {
			return err
		}
		txid := txs[i].txid

		var tx model.Transaction
		found, err := getJSON(batch, txKey(txid), &tx)
		if err != nil {
			return err
		}
		// A duplicate txid written by a later block owns the record now.
		if !found || tx.BlockHash != hash {
			continue
		}

		inputs, err := listJSON[model.TransactionInput](batch, inputPrefix(txid))
		if err != nil {
			return err
		}
		for _, in := range inputs {
			if err := deleteKey(batch, inputKey(in.TxID, in.Index)); err != nil {
				return err
			}
			if in.IsCoinbase {
				continue
			}
			if err := removeSpend(batch, in); err != nil {
				return err
			}
			if in.Resolved {
				activity.spend(in.Address, in.TxID, tx.Position, in.Value)
			}
		}

		outputs, err := listJSON[model.TransactionOutput](batch, outputPrefix(txid))
		if err != nil {
			return err
		}
		for _, out := range outputs {
			if err := deleteKey(batch, outputKey(out.TxID, out.Index)); err != nil {
				return err
			}
			activity.receive(out.Address, out.TxID, tx.Position, out.Value)
		}

		if err := deleteKey(batch, txKey(txid)); err != nil {
			return err
		}
	}

	if err := activity.revert(batch, height); err != nil {
		return err
	}
	if err := deleteKey(batch, blockKey(hash)); err != nil {
		return err
	}
	return deleteKey(batch, heightKey(height))
}

// removeSpend drops the spend marker of in.PrevOut when in is the recorded spender.
func removeSpend(batch *pebble.Batch, in model.TransactionInput) error {
	var spender model.OutPoint
	found, err := getJSON(batch, spendKey(in.PrevOut), &spender)
	if err != nil {
		return err
	}
	if !found || spender.TxID != in.TxID || spender.Index != in.Index {
		return nil
	}
	return deleteKey(batch, spendKey(in.PrevOut))
}

type addressFlow struct {
	received uint64
	sent     uint64
}

type addressRow struct {
	address  string
	txid     string
	position uint32
}

// addressActivity collects the per-address effect of one block.
type addressActivity struct {
	rows  map[addressRow]*addressFlow
	order []addressRow
}

func newAddressActivity() *addressActivity {
	return &addressActivity{rows: make(map[addressRow]*addressFlow)}
}

func (a *addressActivity) row(address, txid string, position uint32) *addressFlow {
	key := addressRow{address: address, txid: txid, position: position}
	flow, ok := a.rows[key]
	if !ok {
		flow = &addressFlow{}
		a.rows[key] = flow
		a.order = append(a.order, key)
	}
	return flow
}

func (a *addressActivity) receive(address, txid string, position uint32, value uint64) {
	if address == "" {
		return
	}
	a.row(address, txid, position).received += value
}

func (a *addressActivity) spend(address, txid string, position uint32, value uint64) {
	if address == "" {
		return
	}
	a.row(address, txid, position).sent += value
}

func (a *addressActivity) apply(batch *pebble.Batch, height int64) error {
	for _, key := range a.order {
		flow := a.rows[key]
		histKey := addressHistoryKey(key.address, height, key.position)

		var existing model.AddressTransaction
		seen, err := getJSON(batch, histKey, &existing)
		if err != nil {
			return err
		}
		if err := setJSON(batch, histKey, model.AddressTransaction{
			TxID:        key.txid,
			BlockHeight: height,
			Position:    key.position,
			Received:    flow.received,
			Sent:        flow.sent,
		}); err != nil {
			return err
		}

		summary, err := readSummary(batch, key.address)
		if err != nil {
			return err
		}
		if seen {
			summary.Received -= min(summary.Received, existing.Received)
			summary.Sent -= min(summary.Sent, existing.Sent)
		} else {
			summary.TxCount++
		}
		summary.Received += flow.received
		summary.Sent += flow.sent
		if err := setJSON(batch, addressKey(key.address), summary); err != nil {
			return err
		}
	}
	return nil
}

func (a *addressActivity) revert(batch *pebble.Batch, height int64) error {
	for _, key := range a.order {
		flow := a.rows[key]
		histKey := addressHistoryKey(key.address, height, key.position)
		if err := deleteKey(batch, histKey); err != nil {
			return err
		}

		summary, err := readSummary(batch, key.address)
		if err != nil {
			return err
		}
		summary.Received -= min(summary.Received, flow.received)
		summary.Sent -= min(summary.Sent, flow.sent)
		if summary.TxCount > 0 {
			summary.TxCount--
		}
		if summary.TxCount == 0 {
			if err := deleteKey(batch, addressKey(key.address)); err != nil {
				return err
			}
			continue
		}
		if err := setJSON(batch, addressKey(key.address), summary); err != nil {
			return err
		}
	}
	return nil
}

func readSummary(r pebble.Reader, address string) (model.AddressSummary, error) {
	summary := model.AddressSummary{Address: address}
	if _, err := getJSON(r, addressKey(address), &summary); err != nil {
		return model.AddressSummary{}, err
	}
	return summary, nil
}

func readCursor(r pebble.Reader) (model.Cursor, error) {
	cur := model.Cursor{Height: model.GenesisNotIndexed, State: model.CursorIdle}
	found, err := getJSON(r, []byte(keyCursor), &cur)
	if err != nil {
		return model.Cursor{}, err
	}
	if !found {
		return model.Cursor{Height: model.GenesisNotIndexed, State: model.CursorIdle}, nil
	}
	return cur, nil
}
