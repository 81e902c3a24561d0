package bitcoin

import (
	"context"
	"encoding/json"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// NodeClient is the subset of *rpcclient.Client the explorer uses.
	NodeClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		GetBlockChainInfo() (*btcjson.GetBlockChainInfoResult, error)
		GetRawMempoolVerbose() (map[string]btcjson.GetRawMempoolVerboseResult, error)
		RawRequest(method string, params []json.RawMessage) (json.RawMessage, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// RPC is the context-aware, classified view of the node used by Node.
	RPC interface {
		GetBlockCount(ctx context.Context) (int64, error)
		GetBlockHash(ctx context.Context, blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(ctx context.Context, blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
		GetRawTransactionVerbose(ctx context.Context, txHash *chainhash.Hash) (*btcjson.TxRawResult, error)
		GetBlockChainInfo(ctx context.Context) (*btcjson.GetBlockChainInfoResult, error)
		GetRawMempoolVerbose(ctx context.Context) (map[string]btcjson.GetRawMempoolVerboseResult, error)
		ScanTxOutSet(ctx context.Context, descriptors []string) (*ScanTxOutSetResult, error)
	}
)

// ScanTxOutSetResult is the reply of bitcoind's scantxoutset "start" action.
type ScanTxOutSetResult struct {
	Success     bool                  `json:"success"`
	TxOuts      int64                 `json:"txouts"`
	Height      int64                 `json:"height"`
	BestBlock   string                `json:"bestblock"`
	Unspents    []ScanTxOutSetUnspent `json:"unspents"`
	TotalAmount float64               `json:"total_amount"`
}

// ScanTxOutSetUnspent is one unspent output found by scantxoutset.
type ScanTxOutSetUnspent struct {
	TxID         string  `json:"txid"`
	Vout         uint32  `json:"vout"`
	ScriptPubKey string  `json:"scriptPubKey"`
	Descriptor   string  `json:"desc"`
	Amount       float64 `json:"amount"`
	Coinbase     bool    `json:"coinbase"`
	Height       int64   `json:"height"`
}

type (
	btcjsonBlock = btcjson.GetBlockVerboseTxResult
	btcjsonTx    = btcjson.TxRawResult
)
