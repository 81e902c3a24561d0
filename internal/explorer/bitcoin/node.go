package bitcoin

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
)

// Node implements the explorer's node contract on top of an RPC client.
// It keeps no state between calls and is safe for concurrent use.
type Node struct {
	rpc     RPC
	retrier *Retrier
	params  *chaincfg.Params
}

// NewNode creates a Node for the network described by params.
func NewNode(rpc RPC, retrier *Retrier, params *chaincfg.Params) *Node {
	return &Node{
		rpc:     rpc,
		retrier: retrier,
		params:  params,
	}
}

// FetchCurrentHeight returns the height of the node's best block.
func (n *Node) FetchCurrentHeight(ctx context.Context) (int64, error) {
	return retry(ctx, n.retrier, "get_block_count", n.rpc.GetBlockCount)
}

// FetchBlockHash returns the canonical block hash at height.
func (n *Node) FetchBlockHash(ctx context.Context, height int64) (string, error) {
	hash, err := n.blockHash(ctx, height)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

// FetchBlockAtHeight retrieves the canonical block at height with all transactions.
func (n *Node) FetchBlockAtHeight(ctx context.Context, height int64) (*chain.RawBlock, error) {
	hash, err := n.blockHash(ctx, height)
	if err != nil {
		return nil, err
	}
	return n.fetchBlock(ctx, hash)
}

// FetchBlockByHash retrieves a block by its hash.
func (n *Node) FetchBlockByHash(ctx context.Context, hash string) (*chain.RawBlock, error) {
	h, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid block hash %q", chain.ErrNotFound, hash)
	}
	return n.fetchBlock(ctx, h)
}

// FetchTransaction retrieves a transaction by txid. It requires a txindex-enabled node
// for confirmed transactions outside the mempool.
func (n *Node) FetchTransaction(ctx context.Context, txid string) (*chain.RawTransaction, error) {
	h, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid txid %q", chain.ErrNotFound, txid)
	}
	src, err := retry(ctx, n.retrier, "get_raw_transaction_verbose", func(ctx context.Context) (*btcjsonTx, error) {
		return n.rpc.GetRawTransactionVerbose(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	return BuildRawTransaction(*src)
}

// FetchAddressUtxos lists the unspent outputs paying to address using scantxoutset.
func (n *Node) FetchAddressUtxos(ctx context.Context, address string) ([]chain.Utxo, error) {
	if _, err := btcutil.DecodeAddress(address, n.params); err != nil {
		return nil, fmt.Errorf("%w: invalid address %q: %w", chain.ErrNotFound, address, err)
	}
	descriptors := []string{fmt.Sprintf("addr(%s)", address)}
	res, err := retry(ctx, n.retrier, "scan_tx_out_set", func(ctx context.Context) (*ScanTxOutSetResult, error) {
		return n.rpc.ScanTxOutSet(ctx, descriptors)
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, fmt.Errorf("%w: scantxoutset for %s did not complete", chain.ErrMalformedResponse, address)
	}

	utxos := make([]chain.Utxo, 0, len(res.Unspents))
	for _, u := range res.Unspents {
		value, err := BtcToSatoshis(u.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: utxo %s:%d amount: %w", chain.ErrMalformedResponse, u.TxID, u.Vout, err)
		}
		utxos = append(utxos, chain.Utxo{
			TxID:         u.TxID,
			Vout:         u.Vout,
			Value:        value,
			Height:       u.Height,
			ScriptPubKey: u.ScriptPubKey,
		})
	}
	return utxos, nil
}

// FetchChainInfo returns the node's chain summary.
func (n *Node) FetchChainInfo(ctx context.Context) (*chain.ChainInfo, error) {
	info, err := retry(ctx, n.retrier, "get_blockchain_info", n.rpc.GetBlockChainInfo)
	if err != nil {
		return nil, err
	}
	return &chain.ChainInfo{
		Chain:         info.Chain,
		Blocks:        int64(info.Blocks),
		Headers:       int64(info.Headers),
		BestBlockHash: info.BestBlockHash,
		Difficulty:    info.Difficulty,
		MedianTime:    time.Unix(info.MedianTime, 0).UTC(),
	}, nil
}

// FetchMempoolSummary aggregates the node mempool into counts and fee rate bounds
// and returns every entry for the distribution views.
func (n *Node) FetchMempoolSummary(ctx context.Context) (*chain.MempoolSummary, error) {
	entries, err := retry(ctx, n.retrier, "get_raw_mempool_verbose", n.rpc.GetRawMempoolVerbose)
	if err != nil {
		return nil, err
	}

	summary := &chain.MempoolSummary{TransactionCount: len(entries)}
	if len(entries) == 0 {
		return summary, nil
	}
	summary.Entries = make([]chain.MempoolEntry, 0, len(entries))
	summary.MinFeeRate = math.MaxFloat64
	for txid, entry := range entries {
		fee, err := BtcToSatoshis(entry.Fee)
		if err != nil {
			return nil, fmt.Errorf("%w: mempool tx %s fee: %w", chain.ErrMalformedResponse, txid, err)
		}
		vsize := int64(entry.Vsize)
		if vsize <= 0 {
			vsize = int64(entry.Size)
		}
		summary.Entries = append(summary.Entries, chain.MempoolEntry{
			TxID:  txid,
			Fee:   fee,
			VSize: vsize,
			Time:  time.Unix(entry.Time, 0).UTC(),
		})
		summary.TotalVSize += vsize
		summary.TotalFees += fee
		if vsize == 0 {
			continue
		}
		rate := float64(fee) / float64(vsize)
		summary.MinFeeRate = math.Min(summary.MinFeeRate, rate)
		summary.MaxFeeRate = math.Max(summary.MaxFeeRate, rate)
	}
	if summary.MinFeeRate == math.MaxFloat64 {
		summary.MinFeeRate = 0
	}
	slices.SortFunc(summary.Entries, func(a, b chain.MempoolEntry) int {
		return cmp.Compare(a.TxID, b.TxID)
	})
	return summary, nil
}

func (n *Node) blockHash(ctx context.Context, height int64) (*chainhash.Hash, error) {
	if height < 0 {
		return nil, fmt.Errorf("%w: negative block height %d", chain.ErrNotFound, height)
	}
	return retry(ctx, n.retrier, "get_block_hash", func(ctx context.Context) (*chainhash.Hash, error) {
		return n.rpc.GetBlockHash(ctx, height)
	})
}

func (n *Node) fetchBlock(ctx context.Context, hash *chainhash.Hash) (*chain.RawBlock, error) {
	src, err := retry(ctx, n.retrier, "get_block_verbose_tx", func(ctx context.Context) (*btcjsonBlock, error) {
		return n.rpc.GetBlockVerboseTx(ctx, hash)
	})
	if err != nil {
		return nil, err
	}
	return BuildRawBlock(*src)
}
