package cursor

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Node interface {
		FetchCurrentHeight(ctx context.Context) (int64, error)
		FetchBlockHash(ctx context.Context, height int64) (string, error)
		FetchBlockAtHeight(ctx context.Context, height int64) (*chain.RawBlock, error)
	}
	Processor interface {
		Process(ctx context.Context, raw *chain.RawBlock) (*chain.ProcessedBlock, error)
	}
	Store interface {
		Cursor(ctx context.Context) (model.Cursor, error)
		BlockHashAtHeight(ctx context.Context, height int64) (string, error)
		WriteBlock(ctx context.Context, pb *chain.ProcessedBlock) error
		MarkNonCanonical(ctx context.Context, fromHeight, toHeight int64) error
	}
	// Observer is notified synchronously from Advance and must not block.
	Observer interface {
		StateChanged(from, to model.CursorState)
		BlockIndexed(ctx context.Context, pb *chain.ProcessedBlock)
		Rewound(ctx context.Context, forkHeight, depth int64)
	}
)
