package query

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/storage"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// DataSource answers the explorer queries. Missing entities are reported with
	// chain.ErrNotFound and malformed identifiers with ErrInvalidArgument.
	DataSource interface {
		GetBlock(ctx context.Context, id string) (*BlockDetail, error)
		ListBlocks(ctx context.Context, page int) (*BlocksResponse, error)
		GetTransaction(ctx context.Context, txid string) (*TransactionDetail, error)
		GetAddressInfo(ctx context.Context, address string, page int) (*AddressInfo, error)
		GetCurrentBlockHeight(ctx context.Context) (int64, error)
	}

	// Index is the read side of the block store.
	Index interface {
		TipHeight(ctx context.Context) (int64, error)
		BlockHashAtHeight(ctx context.Context, height int64) (string, error)
		BlockByHash(ctx context.Context, hash string) (*model.Block, error)
		BlockByHeight(ctx context.Context, height int64) (*model.Block, error)
		BlockTransactions(ctx context.Context, height int64) ([]model.Transaction, error)
		Transaction(ctx context.Context, txid string) (*storage.TransactionRecord, error)
		ListBlocks(ctx context.Context, page, pageSize int) (*storage.BlockPage, error)
		Address(ctx context.Context, address string, page, pageSize int) (*storage.AddressRecord, error)
	}

	// Node is the live view of the chain used when the index cannot answer.
	Node interface {
		FetchCurrentHeight(ctx context.Context) (int64, error)
		FetchBlockHash(ctx context.Context, height int64) (string, error)
		FetchBlockAtHeight(ctx context.Context, height int64) (*chain.RawBlock, error)
		FetchBlockByHash(ctx context.Context, hash string) (*chain.RawBlock, error)
		FetchTransaction(ctx context.Context, txid string) (*chain.RawTransaction, error)
		FetchAddressUtxos(ctx context.Context, address string) ([]chain.Utxo, error)
		FetchChainInfo(ctx context.Context) (*chain.ChainInfo, error)
		FetchMempoolSummary(ctx context.Context) (*chain.MempoolSummary, error)
	}

	ScriptDecoder interface {
		Decode(scriptHex string) (bitcoin.DecodedScript, error)
	}
)
