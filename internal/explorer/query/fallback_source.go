package query

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"go.uber.org/zap"
)

// FallbackSource serves from the index and asks the node for blocks and
// transactions the index does not hold yet, such as mempool transactions.
// Address lookups never fall back: a UTXO set scan takes minutes on mainnet.
type FallbackSource struct {
	primary  DataSource
	fallback DataSource
	logger   *zap.Logger
}

// NewFallbackSource builds a FallbackSource.
func NewFallbackSource(primary, fallback DataSource, logger *zap.Logger) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With(zap.String("component", "query_fallback")),
	}
}

func (s *FallbackSource) GetBlock(ctx context.Context, id string) (*BlockDetail, error) {
	detail, err := s.primary.GetBlock(ctx, id)
	if !errors.Is(err, chain.ErrNotFound) {
		return detail, err
	}
	s.logger.Debug("block not indexed, asking node", zap.String("id", id))
	return s.fallback.GetBlock(ctx, id)
}

func (s *FallbackSource) ListBlocks(ctx context.Context, page int) (*BlocksResponse, error) {
	return s.primary.ListBlocks(ctx, page)
}

func (s *FallbackSource) GetTransaction(ctx context.Context, txid string) (*TransactionDetail, error) {
	detail, err := s.primary.GetTransaction(ctx, txid)
	if !errors.Is(err, chain.ErrNotFound) {
		return detail, err
	}
	s.logger.Debug("transaction not indexed, asking node", zap.String("txid", txid))
	return s.fallback.GetTransaction(ctx, txid)
}

func (s *FallbackSource) GetAddressInfo(ctx context.Context, address string, page int) (*AddressInfo, error) {
	return s.primary.GetAddressInfo(ctx, address, page)
}

func (s *FallbackSource) GetCurrentBlockHeight(ctx context.Context) (int64, error) {
	return s.primary.GetCurrentBlockHeight(ctx)
}
