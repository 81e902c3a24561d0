package bitcoin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/semaphore"
)

const (
	defaultCallTimeout    = 30 * time.Second
	defaultMaxConcurrency = 8
)

// RPCClientConfig bounds how hard the client may drive the node.
type RPCClientConfig struct {
	// CallTimeout is the deadline of a single RPC call.
	CallTimeout time.Duration
	// MaxConcurrency caps in-flight calls against the node.
	MaxConcurrency int64
	// RateLimit caps calls per second; zero disables the limit.
	RateLimit int
}

// RPCClient wraps btc rpcclient with timeouts, a concurrency cap, error classification
// and metrics instrumentation.
type RPCClient struct {
	client     NodeClient
	rpcMetrics RPCMetrics
	timeout    time.Duration
	sem        *semaphore.Weighted
	limiter    ratelimit.Limiter
}

// NewRPCClient constructs an instrumented RPC client.
func NewRPCClient(client NodeClient, rpcMetrics RPCMetrics, cfg RPCClientConfig) *RPCClient {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RateLimit > 0 {
		limiter = ratelimit.New(cfg.RateLimit)
	}
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		timeout:    cfg.CallTimeout,
		sem:        semaphore.NewWeighted(cfg.MaxConcurrency),
		limiter:    limiter,
	}
}

// GetBlockCount returns the latest block count.
func (r *RPCClient) GetBlockCount(ctx context.Context) (int64, error) {
	return call(ctx, r, "get_block_count", r.client.GetBlockCount)
}

// GetBlockHash returns the block hash for a height.
func (r *RPCClient) GetBlockHash(ctx context.Context, blockHeight int64) (*chainhash.Hash, error) {
	return call(ctx, r, "get_block_hash", func() (*chainhash.Hash, error) {
		return r.client.GetBlockHash(blockHeight)
	})
}

// GetBlockVerboseTx returns a verbose block with transactions.
func (r *RPCClient) GetBlockVerboseTx(ctx context.Context, blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error) {
	return call(ctx, r, "get_block_verbose_tx", func() (*btcjson.GetBlockVerboseTxResult, error) {
		return r.client.GetBlockVerboseTx(blockHash)
	})
}

// GetRawTransactionVerbose returns a decoded transaction.
func (r *RPCClient) GetRawTransactionVerbose(ctx context.Context, txHash *chainhash.Hash) (*btcjson.TxRawResult, error) {
	return call(ctx, r, "get_raw_transaction_verbose", func() (*btcjson.TxRawResult, error) {
		return r.client.GetRawTransactionVerbose(txHash)
	})
}

// GetBlockChainInfo returns the node's chain state.
func (r *RPCClient) GetBlockChainInfo(ctx context.Context) (*btcjson.GetBlockChainInfoResult, error) {
	return call(ctx, r, "get_blockchain_info", r.client.GetBlockChainInfo)
}

// GetRawMempoolVerbose returns every mempool entry keyed by txid.
func (r *RPCClient) GetRawMempoolVerbose(ctx context.Context) (map[string]btcjson.GetRawMempoolVerboseResult, error) {
	return call(ctx, r, "get_raw_mempool_verbose", r.client.GetRawMempoolVerbose)
}

// ScanTxOutSet runs a blocking scantxoutset over the given output descriptors.
func (r *RPCClient) ScanTxOutSet(ctx context.Context, descriptors []string) (*ScanTxOutSetResult, error) {
	return call(ctx, r, "scan_tx_out_set", func() (*ScanTxOutSetResult, error) {
		action, err := json.Marshal("start")
		if err != nil {
			return nil, err
		}
		objects := make([]map[string]string, 0, len(descriptors))
		for _, desc := range descriptors {
			objects = append(objects, map[string]string{"desc": desc})
		}
		scan, err := json.Marshal(objects)
		if err != nil {
			return nil, err
		}

		raw, err := r.client.RawRequest("scantxoutset", []json.RawMessage{action, scan})
		if err != nil {
			return nil, err
		}
		var res ScanTxOutSetResult
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, err
		}
		return &res, nil
	})
}

// call runs fn under the concurrency cap and the per-call deadline. The node client has
// no context support, so a call that outlives its deadline is abandoned, not interrupted.
// An abandoned call keeps its concurrency slot until the node answers.
func call[T any](ctx context.Context, r *RPCClient, operation string, fn func() (T, error)) (res T, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(operation, err, started)
	}()

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err = r.sem.Acquire(callCtx, 1); err != nil {
		return res, r.deadlineErr(ctx, operation)
	}
	r.limiter.Take()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		defer r.sem.Release(1)
		value, callErr := fn()
		done <- result{value: value, err: callErr}
	}()

	select {
	case <-callCtx.Done():
		return res, r.deadlineErr(ctx, operation)
	case out := <-done:
		return out.value, classify(operation, out.err)
	}
}

func (r *RPCClient) deadlineErr(ctx context.Context, operation string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%s: %w after %s", operation, chain.ErrTimeout, r.timeout)
}
