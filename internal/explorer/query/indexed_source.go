package query

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// defaultBlockTxRows caps the transaction rows rendered on a block page.
const defaultBlockTxRows = 100

// IndexedSource answers queries from the local index.
type IndexedSource struct {
	index       Index
	now         func() time.Time
	blockTxRows int
}

// NewIndexedSource builds an IndexedSource over index.
func NewIndexedSource(index Index) *IndexedSource {
	return &IndexedSource{index: index, now: time.Now, blockTxRows: defaultBlockTxRows}
}

// GetCurrentBlockHeight returns the height of the last indexed block, or -1 when
// nothing is indexed yet.
func (s *IndexedSource) GetCurrentBlockHeight(ctx context.Context) (int64, error) {
	return s.index.TipHeight(ctx)
}

// GetBlock resolves id as a height or a block hash.
func (s *IndexedSource) GetBlock(ctx context.Context, id string) (*BlockDetail, error) {
	bid, err := parseBlockID(id)
	if err != nil {
		return nil, err
	}

	var block *model.Block
	if bid.isHeight() {
		block, err = s.index.BlockByHeight(ctx, bid.height)
	} else {
		block, err = s.index.BlockByHash(ctx, bid.hash)
	}
	if err != nil {
		return nil, err
	}

	txs, err := s.index.BlockTransactions(ctx, block.Height)
	if err != nil {
		return nil, fmt.Errorf("block %d transactions: %w", block.Height, err)
	}
	rows := make([]BlockTransaction, 0, min(len(txs), s.blockTxRows))
	for _, tx := range txs[:min(len(txs), s.blockTxRows)] {
		rec, err := s.index.Transaction(ctx, tx.TxID)
		if err != nil {
			return nil, fmt.Errorf("block %d transaction %s: %w", block.Height, tx.TxID, err)
		}
		rows = append(rows, blockTransactionRow(rec.Transaction, rec.Inputs, rec.Outputs, block.Timestamp))
	}

	next, err := s.index.BlockHashAtHeight(ctx, block.Height+1)
	switch {
	case errors.Is(err, chain.ErrNotFound):
		next = ""
	case err != nil:
		return nil, err
	}

	return blockDetail(block, rows, next), nil
}

// ListBlocks returns page (1-based) of the newest blocks.
func (s *IndexedSource) ListBlocks(ctx context.Context, page int) (*BlocksResponse, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	res, err := s.index.ListBlocks(ctx, page, BlocksPageSize)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := &BlocksResponse{
		Data:        make([]BlockSummary, 0, len(res.Blocks)),
		TotalPages:  totalPages(res.Total, BlocksPageSize),
		CurrentPage: page,
		TotalBlocks: res.Total,
		PageSize:    BlocksPageSize,
	}
	for i := range res.Blocks {
		out.Data = append(out.Data, blockSummary(&res.Blocks[i], now))
	}
	return out, nil
}

// GetTransaction returns an indexed transaction with its confirmation count.
func (s *IndexedSource) GetTransaction(ctx context.Context, txid string) (*TransactionDetail, error) {
	if err := validateHash(txid); err != nil {
		return nil, err
	}
	rec, err := s.index.Transaction(ctx, txid)
	if err != nil {
		return nil, err
	}
	block, err := s.index.BlockByHash(ctx, rec.Transaction.BlockHash)
	if err != nil {
		return nil, fmt.Errorf("block of transaction %s: %w", txid, err)
	}
	tip, err := s.index.TipHeight(ctx)
	if err != nil {
		return nil, err
	}

	detail := transactionDetail(rec.Transaction, rec.Inputs, rec.Outputs)
	detail.Status = statusConfirmed
	detail.BlockHash = block.Hash
	detail.BlockHeight = block.Height
	detail.Timestamp = formatTimestamp(block.Timestamp)
	detail.Confirmations = confirmations(tip, block.Height)
	for i := range detail.Outputs {
		if spender, ok := rec.SpentBy[uint32(i)]; ok {
			detail.Outputs[i].Spent = true
			detail.Outputs[i].SpentBy = spender.TxID
		}
	}
	return detail, nil
}

// GetAddressInfo returns the indexed balance and one page of history of address.
func (s *IndexedSource) GetAddressInfo(ctx context.Context, address string, page int) (*AddressInfo, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidArgument)
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}
	rec, err := s.index.Address(ctx, address, page, AddressPageSize)
	if err != nil {
		return nil, err
	}
	tip, err := s.index.TipHeight(ctx)
	if err != nil {
		return nil, err
	}
	txCount, err := safe.Int64(rec.Summary.TxCount)
	if err != nil {
		return nil, fmt.Errorf("address %s tx count: %w", address, err)
	}

	info := &AddressInfo{
		Address:          address,
		Balance:          FormatBTC(rec.Summary.Balance()),
		TotalReceived:    FormatBTC(rec.Summary.Received),
		TotalSent:        FormatBTC(rec.Summary.Sent),
		TransactionCount: rec.Summary.TxCount,
		Transactions:     make([]AddressTransaction, 0, len(rec.History)),
		CurrentPage:      page,
		TotalPages:       totalPages(txCount, AddressPageSize),
	}
	for _, row := range rec.History {
		info.Transactions = append(info.Transactions, AddressTransaction{
			Hash:          row.TxID,
			BlockHeight:   row.BlockHeight,
			Received:      FormatBTC(row.Received),
			Sent:          FormatBTC(row.Sent),
			Confirmations: confirmations(tip, row.BlockHeight),
		})
	}
	return info, nil
}

func blockDetail(block *model.Block, rows []BlockTransaction, nextHash string) *BlockDetail {
	detail := &BlockDetail{
		Hash:              block.Hash,
		Height:            strconv.FormatInt(block.Height, 10),
		Timestamp:         formatTimestamp(block.Timestamp),
		Size:              formatBytes(block.Size),
		Difficulty:        formatDifficulty(block.Difficulty),
		Nonce:             strconv.FormatUint(uint64(block.Nonce), 10),
		TransactionCount:  strconv.FormatUint(uint64(block.TXCount), 10),
		Transactions:      rows,
		Version:           strconv.FormatInt(int64(block.Version), 10),
		PreviousBlockHash: block.PreviousHash,
		MerkleRoot:        block.MerkleRoot,
		Target:            formatTarget(block.Bits),
		BlockReward:       FormatBTC(block.Reward),
		TotalFees:         FormatBTC(block.TotalFees),
		TotalOutput:       FormatBTC(block.TotalOutputValue),
		PartialFeeData:    block.PartialFeeData,
	}
	if block.Height > 0 && block.PreviousHash != "" {
		prev := block.PreviousHash
		detail.PrevBlock = &prev
	}
	if nextHash != "" {
		detail.NextBlock = &nextHash
	}
	return detail
}

func blockSummary(block *model.Block, now time.Time) BlockSummary {
	return BlockSummary{
		Hash:         block.Hash,
		Height:       strconv.FormatInt(block.Height, 10),
		Size:         formatCount(block.Size),
		Transactions: strconv.FormatUint(uint64(block.TXCount), 10),
		Reward:       FormatBTC(block.Reward),
		Time:         formatTime(block.Timestamp),
		Ago:          formatAgo(now, block.Timestamp),
	}
}

// blockTransactionRow summarizes a transaction by its first input and first
// addressed output.
func blockTransactionRow(tx model.Transaction, inputs []model.TransactionInput, outputs []model.TransactionOutput, blockTime time.Time) BlockTransaction {
	row := BlockTransaction{
		Hash:   tx.TxID,
		From:   notAvailable,
		To:     notAvailable,
		Amount: FormatBTC(tx.TotalOutput),
		Fee:    feeText(tx),
		Time:   formatTime(blockTime),
	}
	if tx.IsCoinbase {
		row.From = blockRewardSentinel
	} else if len(inputs) > 0 {
		row.From = orNotAvailable(inputs[0].Address)
	}
	for _, out := range outputs {
		if out.Address != "" {
			row.To = out.Address
			break
		}
	}
	return row
}

func feeText(tx model.Transaction) string {
	if !tx.FeeKnown {
		return notAvailable
	}
	return FormatBTC(tx.Fee)
}

// transactionDetail fills everything that does not depend on the containing block.
func transactionDetail(tx model.Transaction, inputs []model.TransactionInput, outputs []model.TransactionOutput) *TransactionDetail {
	detail := &TransactionDetail{
		Hash:        tx.TxID,
		Status:      statusUnconfirmed,
		BlockHeight: model.GenesisNotIndexed,
		Size:        formatBytes(tx.Size),
		Version:     tx.Version,
		LockTime:    tx.LockTime,
		InputCount:  tx.InputCount,
		OutputCount: tx.OutputCount,
		TotalInput:  notAvailable,
		TotalOutput: FormatBTC(tx.TotalOutput),
		Fee:         feeText(tx),
		FeeRate:     notAvailable,
		Inputs:      make([]TransactionInput, 0, len(inputs)),
		Outputs:     make([]TransactionOutput, 0, len(outputs)),
		Weight:      tx.Weight,
		VirtualSize: tx.VSize,
	}
	if tx.FeeKnown {
		detail.FeeRate = formatFeeRate(tx.Fee, tx.VSize)
		if !tx.IsCoinbase {
			detail.TotalInput = FormatBTC(tx.TotalInput)
		}
	}

	for i, in := range inputs {
		view := TransactionInput{
			Index:          i,
			PreviousTxHash: in.PrevOut.TxID,
			OutputIndex:    strconv.FormatUint(uint64(in.PrevOut.Index), 10),
			ScriptSig:      orNotAvailable(in.ScriptSigHex),
			Sequence:       strconv.FormatUint(uint64(in.Sequence), 10),
			Address:        orNotAvailable(in.Address),
			Value:          notAvailable,
		}
		if in.IsCoinbase {
			view.PreviousTxHash = blockRewardSentinel
			view.OutputIndex = notAvailable
		} else if in.Resolved {
			view.Value = FormatBTC(in.Value)
		}
		detail.Inputs = append(detail.Inputs, view)
	}

	for i, out := range outputs {
		script := out.ScriptAsm
		if script == "" {
			script = out.ScriptHex
		}
		detail.Outputs = append(detail.Outputs, TransactionOutput{
			Index:        i,
			Value:        FormatBTC(out.Value),
			ScriptPubKey: orNotAvailable(script),
			Address:      orNotAvailable(out.Address),
			Type:         string(out.ScriptType),
		})
	}
	return detail
}
