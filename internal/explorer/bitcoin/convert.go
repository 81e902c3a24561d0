// Package bitcoin talks to a bitcoin full node and converts its replies into chain types.
package bitcoin

import (
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

// ParseBits parses a bits string into a 32-bit value.
func ParseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

// BuildRawBlock maps a verbose getblock result into a chain.RawBlock.
func BuildRawBlock(src btcjson.GetBlockVerboseTxResult) (*chain.RawBlock, error) {
	bits, err := ParseBits(src.Bits)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d bits parse: %w", chain.ErrMalformedResponse, src.Height, err)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d size overflow: %w", chain.ErrMalformedResponse, src.Height, err)
	}
	weight, err := safe.Uint32(src.Weight)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d weight overflow: %w", chain.ErrMalformedResponse, src.Height, err)
	}
	if src.Hash == "" {
		return nil, fmt.Errorf("%w: block %d without hash", chain.ErrMalformedResponse, src.Height)
	}

	txs := make([]chain.RawTransaction, 0, len(src.Tx))
	for _, tx := range src.Tx {
		raw, err := BuildRawTransaction(tx)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", src.Height, err)
		}
		txs = append(txs, *raw)
	}

	return &chain.RawBlock{
		Hash:         src.Hash,
		Height:       src.Height,
		PreviousHash: src.PreviousHash,
		MerkleRoot:   src.MerkleRoot,
		Time:         time.Unix(src.Time, 0).UTC(),
		Version:      src.Version,
		Bits:         bits,
		Nonce:        src.Nonce,
		Difficulty:   src.Difficulty,
		Size:         size,
		Weight:       weight,
		Txs:          txs,
	}, nil
}

// BuildRawTransaction maps a verbose transaction into a chain.RawTransaction.
func BuildRawTransaction(tx btcjson.TxRawResult) (*chain.RawTransaction, error) {
	size, err := safe.Uint32(tx.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %s size overflow: %w", chain.ErrMalformedResponse, tx.Txid, err)
	}
	vsize, err := safe.Uint32(tx.Vsize)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %s vsize overflow: %w", chain.ErrMalformedResponse, tx.Txid, err)
	}
	weight, err := safe.Uint32(tx.Weight)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %s weight overflow: %w", chain.ErrMalformedResponse, tx.Txid, err)
	}
	version, err := safe.Uint32(tx.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %s version overflow: %w", chain.ErrMalformedResponse, tx.Txid, err)
	}

	inputs := make([]chain.RawInput, 0, len(tx.Vin))
	for _, vin := range tx.Vin {
		in := chain.RawInput{
			Coinbase: vin.Coinbase,
			PrevTxID: vin.Txid,
			PrevVout: vin.Vout,
			Sequence: vin.Sequence,
			Witness:  append([]string(nil), vin.Witness...),
		}
		if vin.ScriptSig != nil {
			in.ScriptSigHex = vin.ScriptSig.Hex
		}
		inputs = append(inputs, in)
	}

	outputs := make([]chain.RawOutput, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: tx %s output %d value: %w", chain.ErrMalformedResponse, tx.Txid, idx, err)
		}
		outputs = append(outputs, chain.RawOutput{
			Value:     value,
			ScriptHex: vout.ScriptPubKey.Hex,
			ScriptAsm: vout.ScriptPubKey.Asm,
		})
	}

	raw := &chain.RawTransaction{
		TxID:          tx.Txid,
		Version:       version,
		LockTime:      tx.LockTime,
		Size:          size,
		VSize:         vsize,
		Weight:        weight,
		Inputs:        inputs,
		Outputs:       outputs,
		BlockHash:     tx.BlockHash,
		Confirmations: tx.Confirmations,
	}
	if tx.Blocktime > 0 {
		raw.BlockTime = time.Unix(tx.Blocktime, 0).UTC()
	}
	return raw, nil
}
