package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/query"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	QuerySource interface {
		GetBlock(ctx context.Context, id string) (*query.BlockDetail, error)
		ListBlocks(ctx context.Context, page int) (*query.BlocksResponse, error)
		GetTransaction(ctx context.Context, txid string) (*query.TransactionDetail, error)
		GetAddressInfo(ctx context.Context, address string, page int) (*query.AddressInfo, error)
		GetCurrentBlockHeight(ctx context.Context) (int64, error)
	}
	// ChainSource reports live node state that the index does not keep.
	ChainSource interface {
		ChainInfo(ctx context.Context) (*query.ChainInfo, error)
		Mempool(ctx context.Context) (*query.MempoolSummary, error)
	}
	IndexerStatus interface {
		Snapshot() model.Cursor
	}
)
