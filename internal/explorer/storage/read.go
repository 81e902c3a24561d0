package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// TransactionRecord is a stored transaction with its inputs and outputs in index order.
type TransactionRecord struct {
	Transaction model.Transaction
	Inputs      []model.TransactionInput
	Outputs     []model.TransactionOutput
	// SpentBy maps an output index to the canonical input spending it.
	SpentBy map[uint32]model.OutPoint
}

// BlockPage is one page of blocks, newest first.
type BlockPage struct {
	Blocks []model.Block
	// Total is the number of indexed blocks.
	Total int64
}

// AddressRecord is an address summary with one page of its history, newest first.
type AddressRecord struct {
	Summary model.AddressSummary
	History []model.AddressTransaction
}

// Cursor returns the persisted indexing progress. An empty store reports height -1.
func (s *Store) Cursor(_ context.Context) (cur model.Cursor, err error) {
	started := time.Now()
	defer func() {
		s.observe("cursor", err, started)
	}()
	return readCursor(s.db)
}

// TipHeight returns the height of the last indexed block, or -1.
func (s *Store) TipHeight(ctx context.Context) (int64, error) {
	cur, err := s.Cursor(ctx)
	if err != nil {
		return 0, err
	}
	return cur.Height, nil
}

// BlockHashAtHeight returns the canonical block hash stored at height.
func (s *Store) BlockHashAtHeight(_ context.Context, height int64) (hash string, err error) {
	started := time.Now()
	defer func() {
		s.observe("block_hash_at_height", err, started)
	}()

	hash, found, err := getString(s.db, heightKey(height))
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: block at height %d", chain.ErrNotFound, height)
	}
	return hash, nil
}

// BlockByHash returns a canonical block by hash.
func (s *Store) BlockByHash(_ context.Context, hash string) (block *model.Block, err error) {
	started := time.Now()
	defer func() {
		s.observe("block_by_hash", err, started)
	}()
	return s.blockByHash(hash)
}

// BlockByHeight returns the canonical block at height.
func (s *Store) BlockByHeight(_ context.Context, height int64) (block *model.Block, err error) {
	started := time.Now()
	defer func() {
		s.observe("block_by_height", err, started)
	}()
	return s.blockByHeight(height)
}

// BlockTransactions returns the transactions of the canonical block at height in block order.
func (s *Store) BlockTransactions(_ context.Context, height int64) (txs []model.Transaction, err error) {
	started := time.Now()
	defer func() {
		s.observe("block_transactions", err, started)
	}()

	err = scan(s.db, blockTxPrefix(height), false, func(_, value []byte) (bool, error) {
		var tx model.Transaction
		found, err := getJSON(s.db, txKey(string(value)), &tx)
		if err != nil {
			return false, err
		}
		if found {
			txs = append(txs, tx)
		}
		return true, nil
	})
	return txs, err
}

// Transaction returns a stored transaction with its inputs, outputs and spend status.
func (s *Store) Transaction(_ context.Context, txid string) (rec *TransactionRecord, err error) {
	started := time.Now()
	defer func() {
		s.observe("transaction", err, started)
	}()

	rec = &TransactionRecord{SpentBy: make(map[uint32]model.OutPoint)}
	found, err := getJSON(s.db, txKey(txid), &rec.Transaction)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: transaction %s", chain.ErrNotFound, txid)
	}
	if rec.Inputs, err = listJSON[model.TransactionInput](s.db, inputPrefix(txid)); err != nil {
		return nil, err
	}
	if rec.Outputs, err = listJSON[model.TransactionOutput](s.db, outputPrefix(txid)); err != nil {
		return nil, err
	}
	for _, out := range rec.Outputs {
		var spender model.OutPoint
		spent, err := getJSON(s.db, spendKey(out.OutPoint()), &spender)
		if err != nil {
			return nil, err
		}
		if spent {
			rec.SpentBy[out.Index] = spender
		}
	}
	return rec, nil
}

// ProcessedBlock reassembles the canonical block at height with its transactions,
// inputs and outputs in block order, read from one snapshot.
func (s *Store) ProcessedBlock(_ context.Context, height int64) (pb *chain.ProcessedBlock, err error) {
	started := time.Now()
	defer func() {
		s.observe("processed_block", err, started)
	}()

	snap := s.db.NewSnapshot()
	defer snap.Close()

	hash, found, err := getString(snap, heightKey(height))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: block at height %d", chain.ErrNotFound, height)
	}
	pb = &chain.ProcessedBlock{}
	if found, err = getJSON(snap, blockKey(hash), &pb.Block); err != nil {
		return nil, err
	}
	if !found {
		return nil, storageErr(fmt.Sprintf("block %s", hash), errors.New("height index points at a missing block"))
	}

	err = scan(snap, blockTxPrefix(height), false, func(_, value []byte) (bool, error) {
		txid := string(value)
		var tx model.Transaction
		found, err := getJSON(snap, txKey(txid), &tx)
		if err != nil {
			return false, err
		}
		if !found {
			return false, storageErr(fmt.Sprintf("transaction %s", txid), errors.New("block lists a missing transaction"))
		}
		inputs, err := listJSON[model.TransactionInput](snap, inputPrefix(txid))
		if err != nil {
			return false, err
		}
		outputs, err := listJSON[model.TransactionOutput](snap, outputPrefix(txid))
		if err != nil {
			return false, err
		}
		pb.Txs = append(pb.Txs, tx)
		pb.Inputs = append(pb.Inputs, inputs...)
		pb.Outputs = append(pb.Outputs, outputs...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return pb, nil
}

// Outputs looks up stored outputs by outpoint. Unknown outpoints are left out of the result.
func (s *Store) Outputs(_ context.Context, refs []model.OutPoint) (outputs map[model.OutPoint]model.TransactionOutput, err error) {
	started := time.Now()
	defer func() {
		s.observe("outputs", err, started)
	}()

	outputs = make(map[model.OutPoint]model.TransactionOutput, len(refs))
	for _, ref := range refs {
		var out model.TransactionOutput
		found, err := getJSON(s.db, outputKey(ref.TxID, ref.Index), &out)
		if err != nil {
			return nil, err
		}
		if found {
			outputs[ref] = out
		}
	}
	return outputs, nil
}

// ListBlocks returns page (1-based) of pageSize blocks counting down from the tip:
// page 1 holds tip..tip-pageSize+1.
func (s *Store) ListBlocks(_ context.Context, page, pageSize int) (res *BlockPage, err error) {
	started := time.Now()
	defer func() {
		s.observe("list_blocks", err, started)
	}()

	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("invalid page %d size %d", page, pageSize)
	}

	res = &BlockPage{}
	cur, err := readCursor(s.db)
	if err != nil {
		return nil, err
	}
	if cur.Hash == "" {
		return res, nil
	}
	lowest, err := s.lowestHeight()
	if err != nil {
		return nil, err
	}
	res.Total = cur.Height - lowest + 1

	offset, ok := pageOffset(page, pageSize, res.Total)
	if !ok {
		return res, nil
	}
	top := cur.Height - offset
	for height := top; height > top-int64(pageSize) && height >= lowest; height-- {
		block, err := s.blockByHeight(height)
		if err != nil {
			return nil, err
		}
		res.Blocks = append(res.Blocks, *block)
	}
	return res, nil
}

// Address returns the summary and one page of history of address.
func (s *Store) Address(_ context.Context, address string, page, pageSize int) (rec *AddressRecord, err error) {
	started := time.Now()
	defer func() {
		s.observe("address", err, started)
	}()

	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("invalid page %d size %d", page, pageSize)
	}

	rec = &AddressRecord{}
	found, err := getJSON(s.db, addressKey(address), &rec.Summary)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: address %s", chain.ErrNotFound, address)
	}

	total, err := safe.Int64(rec.Summary.TxCount)
	if err != nil {
		return nil, storageErr("address tx count", err)
	}
	skip, ok := pageOffset(page, pageSize, total)
	if !ok {
		return rec, nil
	}
	err = scan(s.db, addressHistoryPrefix(address), true, func(key, value []byte) (bool, error) {
		if skip > 0 {
			skip--
			return true, nil
		}
		var row model.AddressTransaction
		if err := json.Unmarshal(value, &row); err != nil {
			return false, storageErr(fmt.Sprintf("decode %q", key), err)
		}
		rec.History = append(rec.History, row)
		return len(rec.History) < pageSize, nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// pageOffset returns the number of rows ahead of page. It reports false when the
// page starts at or past total, which also keeps the product from overflowing.
func pageOffset(page, pageSize int, total int64) (int64, bool) {
	if total <= 0 || int64(page-1) > (total-1)/int64(pageSize) {
		return 0, false
	}
	return int64(page-1) * int64(pageSize), true
}

func (s *Store) blockByHash(hash string) (*model.Block, error) {
	var block model.Block
	found, err := getJSON(s.db, blockKey(hash), &block)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: block %s", chain.ErrNotFound, hash)
	}
	return &block, nil
}

func (s *Store) blockByHeight(height int64) (*model.Block, error) {
	hash, found, err := getString(s.db, heightKey(height))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: block at height %d", chain.ErrNotFound, height)
	}
	return s.blockByHash(hash)
}

func (s *Store) lowestHeight() (int64, error) {
	lowest := model.GenesisNotIndexed
	err := scan(s.db, []byte(prefixBlocksByHeight), false, func(key, _ []byte) (bool, error) {
		lowest = heightFromKey(key)
		return false, nil
	})
	return lowest, err
}
