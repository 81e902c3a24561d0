// Package processor turns raw node blocks into fully decoded, fee-annotated records.
package processor

import (
	"context"
	"encoding/hex"
	"fmt"
	"runtime"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/workerpool"
	"go.uber.org/zap"
)

// BlockProcessor decodes raw blocks. It reads persisted outputs but never writes.
type BlockProcessor struct {
	resolver *OutputResolver
	decoder  ScriptDecoder
	network  model.Network
	workers  int
	metrics  Metrics
	logger   *zap.Logger
}

// NewBlockProcessor constructs a BlockProcessor. A non-positive workers count uses
// one decoder per CPU.
func NewBlockProcessor(
	lookup OutputLookup,
	decoder ScriptDecoder,
	network model.Network,
	workers int,
	metrics Metrics,
	logger *zap.Logger,
) *BlockProcessor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BlockProcessor{
		resolver: NewOutputResolver(lookup, metrics),
		decoder:  decoder,
		network:  network,
		workers:  workers,
		metrics:  metrics,
		logger:   logger.With(zap.String("network", string(network))),
	}
}

type decodedTx struct {
	tx      model.Transaction
	inputs  []model.TransactionInput
	outputs []model.TransactionOutput
}

// Process decodes every transaction of raw, resolves input values and computes fees
// and block aggregates. Any failure is reported as chain.ErrDecode.
func (p *BlockProcessor) Process(ctx context.Context, raw *chain.RawBlock) (pb *chain.ProcessedBlock, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessBlock(err, len(raw.Txs), started)
		if err != nil {
			p.logger.Error("process block",
				zap.Int64("height", raw.Height),
				zap.String("hash", raw.Hash),
				zap.Error(err),
			)
		}
	}()

	if len(raw.Txs) == 0 {
		return nil, fmt.Errorf("%w: block %d has no transactions", chain.ErrDecode, raw.Height)
	}

	decoded := make([]decodedTx, len(raw.Txs))
	positions := make([]int, len(raw.Txs))
	for i := range positions {
		positions[i] = i
	}
	err = workerpool.Process(ctx, p.workers, positions, func(_ context.Context, pos int) error {
		d, err := p.decodeTransaction(raw, pos)
		if err != nil {
			return err
		}
		decoded[pos] = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := p.resolver.Resolve(ctx, decoded); err != nil {
		return nil, err
	}

	return p.assemble(raw, decoded)
}

func (p *BlockProcessor) decodeTransaction(raw *chain.RawBlock, pos int) (decodedTx, error) {
	src := raw.Txs[pos]
	position, err := safe.Uint32(pos)
	if err != nil {
		return decodedTx{}, fmt.Errorf("%w: tx position: %w", chain.ErrDecode, err)
	}
	inputCount, err := safe.Uint32(len(src.Inputs))
	if err != nil {
		return decodedTx{}, fmt.Errorf("%w: tx %s input count: %w", chain.ErrDecode, src.TxID, err)
	}
	outputCount, err := safe.Uint32(len(src.Outputs))
	if err != nil {
		return decodedTx{}, fmt.Errorf("%w: tx %s output count: %w", chain.ErrDecode, src.TxID, err)
	}
	if _, err := chainhash.NewHashFromStr(src.TxID); err != nil {
		return decodedTx{}, fmt.Errorf("%w: tx %d txid %q: %w", chain.ErrDecode, pos, src.TxID, err)
	}
	if len(src.Inputs) == 0 {
		return decodedTx{}, fmt.Errorf("%w: tx %s has no inputs", chain.ErrDecode, src.TxID)
	}

	coinbase := src.Inputs[0].IsCoinbase()
	if coinbase != (pos == 0) {
		return decodedTx{}, fmt.Errorf("%w: tx %s at position %d coinbase=%t", chain.ErrDecode, src.TxID, pos, coinbase)
	}

	d := decodedTx{
		tx: model.Transaction{
			TxID:        src.TxID,
			BlockHash:   raw.Hash,
			BlockHeight: raw.Height,
			Position:    position,
			Version:     src.Version,
			LockTime:    src.LockTime,
			Size:        src.Size,
			VSize:       src.VSize,
			Weight:      src.Weight,
			IsCoinbase:  coinbase,
			InputCount:  inputCount,
			OutputCount: outputCount,
		},
		inputs:  make([]model.TransactionInput, 0, len(src.Inputs)),
		outputs: make([]model.TransactionOutput, 0, len(src.Outputs)),
	}

	for idx, in := range src.Inputs {
		index := uint32(idx)
		if coinbase && idx > 0 {
			return decodedTx{}, fmt.Errorf("%w: coinbase tx %s has %d inputs", chain.ErrDecode, src.TxID, len(src.Inputs))
		}
		if !coinbase {
			if in.IsCoinbase() {
				return decodedTx{}, fmt.Errorf("%w: tx %s input %d is a coinbase input", chain.ErrDecode, src.TxID, idx)
			}
			if _, err := chainhash.NewHashFromStr(in.PrevTxID); err != nil {
				return decodedTx{}, fmt.Errorf("%w: tx %s input %d prev txid: %w", chain.ErrDecode, src.TxID, idx, err)
			}
		}
		if _, err := hex.DecodeString(in.ScriptSigHex); err != nil {
			return decodedTx{}, fmt.Errorf("%w: tx %s input %d script sig: %w", chain.ErrDecode, src.TxID, idx, err)
		}

		input := model.TransactionInput{
			TxID:         src.TxID,
			Index:        index,
			IsCoinbase:   coinbase,
			ScriptSigHex: in.ScriptSigHex,
			Sequence:     in.Sequence,
			Witness:      in.Witness,
			BlockHeight:  raw.Height,
		}
		if coinbase {
			input.ScriptSigHex = in.Coinbase
		} else {
			input.PrevOut = model.OutPoint{TxID: in.PrevTxID, Index: in.PrevVout}
		}
		d.inputs = append(d.inputs, input)
	}

	for idx, out := range src.Outputs {
		script, err := p.decoder.Decode(out.ScriptHex)
		if err != nil {
			return decodedTx{}, fmt.Errorf("%w: tx %s output %d: %w", chain.ErrDecode, src.TxID, idx, err)
		}
		asm := script.Asm
		if asm == "" {
			asm = out.ScriptAsm
		}
		d.outputs = append(d.outputs, model.TransactionOutput{
			TxID:        src.TxID,
			Index:       uint32(idx),
			Value:       out.Value,
			ScriptHex:   out.ScriptHex,
			ScriptAsm:   asm,
			ScriptType:  script.Type,
			Address:     script.Address,
			BlockHeight: raw.Height,
			IsCoinbase:  coinbase,
		})
		d.tx.TotalOutput += out.Value
	}
	return d, nil
}

func (p *BlockProcessor) assemble(raw *chain.RawBlock, decoded []decodedTx) (*chain.ProcessedBlock, error) {
	txCount, err := safe.Uint32(len(decoded))
	if err != nil {
		return nil, fmt.Errorf("%w: tx count: %w", chain.ErrDecode, err)
	}

	pb := &chain.ProcessedBlock{
		Block: model.Block{
			Network:      p.network,
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
		},
		Txs: make([]model.Transaction, 0, len(decoded)),
	}

	for i := range decoded {
		d := &decoded[i]
		if err := computeFee(&d.tx, d.inputs); err != nil {
			return nil, err
		}
		if d.tx.IsCoinbase {
			pb.Block.Reward = d.tx.TotalOutput
		}
		if d.tx.FeeKnown {
			pb.Block.TotalFees += d.tx.Fee
		} else {
			pb.Block.PartialFeeData = true
		}
		pb.Block.TotalOutputValue += d.tx.TotalOutput

		pb.Txs = append(pb.Txs, d.tx)
		pb.Inputs = append(pb.Inputs, d.inputs...)
		pb.Outputs = append(pb.Outputs, d.outputs...)
	}
	return pb, nil
}

// computeFee fills TotalInput, Fee and FeeKnown. A coinbase pays no fee; a transaction
// with any unresolved input has an unknown fee.
func computeFee(tx *model.Transaction, inputs []model.TransactionInput) error {
	if tx.IsCoinbase {
		tx.Fee = 0
		tx.FeeKnown = true
		return nil
	}

	tx.FeeKnown = true
	tx.TotalInput = 0
	for _, in := range inputs {
		if !in.Resolved {
			tx.FeeKnown = false
			continue
		}
		tx.TotalInput += in.Value
	}
	if !tx.FeeKnown {
		tx.Fee = 0
		return nil
	}
	if tx.TotalInput < tx.TotalOutput {
		return fmt.Errorf("%w: tx %s spends %d but creates %d", chain.ErrDecode, tx.TxID, tx.TotalInput, tx.TotalOutput)
	}
	tx.Fee = tx.TotalInput - tx.TotalOutput
	return nil
}
