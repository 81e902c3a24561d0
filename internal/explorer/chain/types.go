// Package chain defines the types and errors shared between the indexing components.
package chain

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

// RawBlock is a block as returned by the node, before decoding.
type RawBlock struct {
	Hash         string
	Height       int64
	PreviousHash string
	MerkleRoot   string
	Time         time.Time
	Version      int32
	Bits         uint32
	Nonce        uint32
	Difficulty   float64
	Size         uint32
	Weight       uint32
	Txs          []RawTransaction
}

// RawTransaction is a transaction as returned by the node.
type RawTransaction struct {
	TxID      string
	Version   uint32
	LockTime  uint32
	Size      uint32
	VSize     uint32
	Weight    uint32
	Inputs    []RawInput
	Outputs   []RawOutput
	BlockHash string
	// Confirmations is reported by the node for transactions fetched outside a block.
	Confirmations uint64
	BlockTime     time.Time
}

// RawInput is an undecoded transaction input. Coinbase is set for coinbase inputs.
type RawInput struct {
	Coinbase     string
	PrevTxID     string
	PrevVout     uint32
	ScriptSigHex string
	Sequence     uint32
	Witness      []string
}

// IsCoinbase reports whether the input creates new coins.
func (in RawInput) IsCoinbase() bool {
	return in.Coinbase != ""
}

// RawOutput is an undecoded transaction output with its value already in satoshis.
type RawOutput struct {
	Value     uint64
	ScriptHex string
	ScriptAsm string
}

// ProcessedBlock is a fully decoded block ready for an atomic write.
type ProcessedBlock struct {
	Block   model.Block
	Txs     []model.Transaction
	Inputs  []model.TransactionInput
	Outputs []model.TransactionOutput
}

// Utxo is an unspent output reported by the node for an address.
type Utxo struct {
	TxID         string
	Vout         uint32
	Value        uint64
	Height       int64
	ScriptPubKey string
}

// ChainInfo summarizes the node's view of the chain.
type ChainInfo struct {
	Chain         string
	Blocks        int64
	Headers       int64
	BestBlockHash string
	Difficulty    float64
	MedianTime    time.Time
}

// MempoolSummary summarizes the node mempool.
type MempoolSummary struct {
	TransactionCount int
	TotalVSize       int64
	TotalFees        uint64
	MinFeeRate       float64
	MaxFeeRate       float64
	// Entries are ordered by txid.
	Entries []MempoolEntry
}

// MempoolEntry is one unconfirmed transaction as the node reports it.
type MempoolEntry struct {
	TxID  string
	Fee   uint64
	VSize int64
	// Time is when the transaction entered the mempool.
	Time time.Time
}

// FeeRate is in sat/vB; zero when the size is unknown.
func (e MempoolEntry) FeeRate() float64 {
	if e.VSize <= 0 {
		return 0
	}
	return float64(e.Fee) / float64(e.VSize)
}
