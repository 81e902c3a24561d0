package query

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// NodeSource answers queries straight from the node. Input values are resolved by
// fetching the previous transactions, so transaction lookups need a txindex node.
type NodeSource struct {
	node        Node
	decoder     ScriptDecoder
	params      *chaincfg.Params
	now         func() time.Time
	blockTxRows int
}

// NewNodeSource builds a NodeSource.
func NewNodeSource(node Node, decoder ScriptDecoder, params *chaincfg.Params) *NodeSource {
	return &NodeSource{node: node, decoder: decoder, params: params, now: time.Now, blockTxRows: defaultBlockTxRows}
}

// GetCurrentBlockHeight returns the node's best height.
func (s *NodeSource) GetCurrentBlockHeight(ctx context.Context) (int64, error) {
	return s.node.FetchCurrentHeight(ctx)
}

// GetBlock resolves id as a height or a block hash. Per-transaction fees are not
// available without resolving every input; the block total is derived from the
// coinbase claim minus the subsidy.
func (s *NodeSource) GetBlock(ctx context.Context, id string) (*BlockDetail, error) {
	bid, err := parseBlockID(id)
	if err != nil {
		return nil, err
	}

	var raw *chain.RawBlock
	if bid.isHeight() {
		raw, err = s.node.FetchBlockAtHeight(ctx, bid.height)
	} else {
		raw, err = s.node.FetchBlockByHash(ctx, bid.hash)
	}
	if err != nil {
		return nil, err
	}
	block, err := s.blockModel(raw)
	if err != nil {
		return nil, err
	}

	rows := make([]BlockTransaction, 0, min(len(raw.Txs), s.blockTxRows))
	for i := range raw.Txs[:min(len(raw.Txs), s.blockTxRows)] {
		tx, inputs, outputs, err := s.decodeTransaction(&raw.Txs[i])
		if err != nil {
			return nil, err
		}
		tx.BlockHash = raw.Hash
		tx.BlockHeight = raw.Height
		rows = append(rows, blockTransactionRow(tx, inputs, outputs, raw.Time))
	}

	next, err := s.node.FetchBlockHash(ctx, raw.Height+1)
	switch {
	case errors.Is(err, chain.ErrNotFound):
		next = ""
	case err != nil:
		return nil, err
	}
	return blockDetail(block, rows, next), nil
}

// ListBlocks returns page (1-based) of the newest blocks known to the node.
func (s *NodeSource) ListBlocks(ctx context.Context, page int) (*BlocksResponse, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	tip, err := s.node.FetchCurrentHeight(ctx)
	if err != nil {
		return nil, err
	}

	total := tip + 1
	now := s.now()
	out := &BlocksResponse{
		Data:        make([]BlockSummary, 0, BlocksPageSize),
		TotalPages:  totalPages(total, BlocksPageSize),
		CurrentPage: page,
		TotalBlocks: total,
		PageSize:    BlocksPageSize,
	}
	top := tip - int64(page-1)*BlocksPageSize
	for height := top; height > top-BlocksPageSize && height >= 0; height-- {
		raw, err := s.node.FetchBlockAtHeight(ctx, height)
		if err != nil {
			return nil, err
		}
		block, err := s.blockModel(raw)
		if err != nil {
			return nil, err
		}
		out.Data = append(out.Data, blockSummary(block, now))
	}
	return out, nil
}

// GetTransaction returns a mempool or confirmed transaction as the node reports it.
func (s *NodeSource) GetTransaction(ctx context.Context, txid string) (*TransactionDetail, error) {
	if err := validateHash(txid); err != nil {
		return nil, err
	}
	raw, err := s.node.FetchTransaction(ctx, txid)
	if err != nil {
		return nil, err
	}
	tx, inputs, outputs, err := s.decodeTransaction(raw)
	if err != nil {
		return nil, err
	}
	if err := s.resolveInputs(ctx, &tx, inputs); err != nil {
		return nil, err
	}

	detail := transactionDetail(tx, inputs, outputs)
	if raw.BlockHash == "" || raw.Confirmations == 0 {
		return detail, nil
	}

	tip, err := s.node.FetchCurrentHeight(ctx)
	if err != nil {
		return nil, err
	}
	conf, err := safe.Int64(raw.Confirmations)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction %s confirmations: %w", chain.ErrMalformedResponse, txid, err)
	}
	detail.Status = statusConfirmed
	detail.BlockHash = raw.BlockHash
	detail.BlockHeight = tip - conf + 1
	detail.Timestamp = formatTimestamp(raw.BlockTime)
	detail.Confirmations = conf
	return detail, nil
}

// GetAddressInfo reports the unspent outputs of address from the node UTXO set.
// Spent history is not visible there, so totals received and sent are unknown.
func (s *NodeSource) GetAddressInfo(ctx context.Context, address string, page int) (*AddressInfo, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: empty address", ErrInvalidArgument)
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}
	utxos, err := s.node.FetchAddressUtxos(ctx, address)
	if err != nil {
		return nil, err
	}
	tip, err := s.node.FetchCurrentHeight(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(utxos, func(a, b chain.Utxo) int {
		if c := cmp.Compare(b.Height, a.Height); c != 0 {
			return c
		}
		return cmp.Compare(a.TxID, b.TxID)
	})

	var balance uint64
	txids := make(map[string]struct{}, len(utxos))
	for _, u := range utxos {
		balance += u.Value
		txids[u.TxID] = struct{}{}
	}

	info := &AddressInfo{
		Address:          address,
		Balance:          FormatBTC(balance),
		TotalReceived:    notAvailable,
		TotalSent:        notAvailable,
		TransactionCount: uint64(len(txids)),
		Transactions:     make([]AddressTransaction, 0, AddressPageSize),
		CurrentPage:      page,
		TotalPages:       totalPages(int64(len(utxos)), AddressPageSize),
	}
	start := (page - 1) * AddressPageSize
	for _, u := range utxos[min(start, len(utxos)):min(start+AddressPageSize, len(utxos))] {
		info.Transactions = append(info.Transactions, AddressTransaction{
			Hash:          u.TxID,
			BlockHeight:   u.Height,
			Received:      FormatBTC(u.Value),
			Sent:          FormatBTC(0),
			Confirmations: confirmations(tip, u.Height),
		})
	}
	return info, nil
}

// ChainInfo returns the node's chain summary. IndexedHeight is left for the caller.
func (s *NodeSource) ChainInfo(ctx context.Context) (*ChainInfo, error) {
	info, err := s.node.FetchChainInfo(ctx)
	if err != nil {
		return nil, err
	}
	return &ChainInfo{
		Chain:         info.Chain,
		BlockHeight:   info.Blocks,
		IndexedHeight: model.GenesisNotIndexed,
		Headers:       info.Headers,
		BestBlockHash: info.BestBlockHash,
		Difficulty:    formatDifficulty(info.Difficulty),
		MedianTime:    formatTimestamp(info.MedianTime),
	}, nil
}

// Mempool summarizes the node mempool.
func (s *NodeSource) Mempool(ctx context.Context) (*MempoolSummary, error) {
	summary, err := s.node.FetchMempoolSummary(ctx)
	if err != nil {
		return nil, err
	}
	return buildMempoolSummary(summary, s.now()), nil
}

func (s *NodeSource) blockModel(raw *chain.RawBlock) (*model.Block, error) {
	txCount, err := safe.Uint32(len(raw.Txs))
	if err != nil {
		return nil, fmt.Errorf("%w: block %d tx count: %w", chain.ErrMalformedResponse, raw.Height, err)
	}
	block := &model.Block{
		Height:       raw.Height,
		Hash:         raw.Hash,
		PreviousHash: raw.PreviousHash,
		MerkleRoot:   raw.MerkleRoot,
		Timestamp:    raw.Time,
		Version:      raw.Version,
		Bits:         raw.Bits,
		Nonce:        raw.Nonce,
		Difficulty:   raw.Difficulty,
		Size:         raw.Size,
		Weight:       raw.Weight,
		TXCount:      txCount,
	}
	// The node does not report input values, so per-transaction fees are unknown.
	block.PartialFeeData = len(raw.Txs) > 1
	for i, tx := range raw.Txs {
		for _, out := range tx.Outputs {
			block.TotalOutputValue += out.Value
			if i == 0 {
				block.Reward += out.Value
			}
		}
	}

	height, err := safe.Int32(raw.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: block height: %w", chain.ErrMalformedResponse, err)
	}
	subsidy, err := safe.Uint64(blockchain.CalcBlockSubsidy(height, s.params))
	if err != nil {
		return nil, fmt.Errorf("block %d subsidy: %w", raw.Height, err)
	}
	if block.Reward > subsidy {
		block.TotalFees = block.Reward - subsidy
	}
	return block, nil
}

// decodeTransaction maps a raw transaction without resolving its inputs.
func (s *NodeSource) decodeTransaction(raw *chain.RawTransaction) (model.Transaction, []model.TransactionInput, []model.TransactionOutput, error) {
	inputCount, err := safe.Uint32(len(raw.Inputs))
	if err != nil {
		return model.Transaction{}, nil, nil, fmt.Errorf("%w: tx %s input count: %w", chain.ErrMalformedResponse, raw.TxID, err)
	}
	outputCount, err := safe.Uint32(len(raw.Outputs))
	if err != nil {
		return model.Transaction{}, nil, nil, fmt.Errorf("%w: tx %s output count: %w", chain.ErrMalformedResponse, raw.TxID, err)
	}
	coinbase := len(raw.Inputs) > 0 && raw.Inputs[0].IsCoinbase()

	tx := model.Transaction{
		TxID:        raw.TxID,
		BlockHash:   raw.BlockHash,
		BlockHeight: model.GenesisNotIndexed,
		Version:     raw.Version,
		LockTime:    raw.LockTime,
		Size:        raw.Size,
		VSize:       raw.VSize,
		Weight:      raw.Weight,
		IsCoinbase:  coinbase,
		InputCount:  inputCount,
		OutputCount: outputCount,
		FeeKnown:    coinbase,
	}

	inputs := make([]model.TransactionInput, 0, len(raw.Inputs))
	for i, in := range raw.Inputs {
		input := model.TransactionInput{
			TxID:         raw.TxID,
			Index:        uint32(i),
			IsCoinbase:   in.IsCoinbase(),
			ScriptSigHex: in.ScriptSigHex,
			Sequence:     in.Sequence,
			Witness:      in.Witness,
		}
		if input.IsCoinbase {
			input.ScriptSigHex = in.Coinbase
		} else {
			input.PrevOut = model.OutPoint{TxID: in.PrevTxID, Index: in.PrevVout}
		}
		inputs = append(inputs, input)
	}

	outputs := make([]model.TransactionOutput, 0, len(raw.Outputs))
	for i, out := range raw.Outputs {
		decoded, err := s.output(raw.TxID, uint32(i), out)
		if err != nil {
			return model.Transaction{}, nil, nil, err
		}
		decoded.IsCoinbase = coinbase
		outputs = append(outputs, decoded)
		tx.TotalOutput += out.Value
	}
	return tx, inputs, outputs, nil
}

func (s *NodeSource) output(txid string, index uint32, out chain.RawOutput) (model.TransactionOutput, error) {
	script, err := s.decoder.Decode(out.ScriptHex)
	if err != nil {
		return model.TransactionOutput{}, fmt.Errorf("%w: tx %s output %d: %w", chain.ErrDecode, txid, index, err)
	}
	asm := script.Asm
	if asm == "" {
		asm = out.ScriptAsm
	}
	return model.TransactionOutput{
		TxID:        txid,
		Index:       index,
		Value:       out.Value,
		ScriptHex:   out.ScriptHex,
		ScriptAsm:   asm,
		ScriptType:  script.Type,
		Address:     script.Address,
		BlockHeight: model.GenesisNotIndexed,
	}, nil
}

// resolveInputs fills input values from the previous transactions and computes the
// fee when every input resolved. Previous transactions the node does not know
// leave their inputs unresolved.
func (s *NodeSource) resolveInputs(ctx context.Context, tx *model.Transaction, inputs []model.TransactionInput) error {
	if tx.IsCoinbase {
		return nil
	}

	prevs := make(map[string]*chain.RawTransaction)
	resolved := 0
	for i := range inputs {
		in := &inputs[i]
		prev, ok := prevs[in.PrevOut.TxID]
		if !ok {
			var err error
			prev, err = s.node.FetchTransaction(ctx, in.PrevOut.TxID)
			switch {
			case errors.Is(err, chain.ErrNotFound):
				prev = nil
			case err != nil:
				return fmt.Errorf("resolve input %d of %s: %w", i, tx.TxID, err)
			}
			prevs[in.PrevOut.TxID] = prev
		}
		if prev == nil || int(in.PrevOut.Index) >= len(prev.Outputs) {
			continue
		}
		out, err := s.output(prev.TxID, in.PrevOut.Index, prev.Outputs[in.PrevOut.Index])
		if err != nil {
			return err
		}
		in.Resolved = true
		in.Value = out.Value
		in.Address = out.Address
		tx.TotalInput += out.Value
		resolved++
	}

	if resolved == len(inputs) && tx.TotalInput >= tx.TotalOutput {
		tx.FeeKnown = true
		tx.Fee = tx.TotalInput - tx.TotalOutput
	}
	return nil
}
