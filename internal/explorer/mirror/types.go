package mirror

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error
		InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error
		DeleteAboveHeight(ctx context.Context, height int64) error
		MaxBlockHeight(ctx context.Context) (int64, error)
	}

	// Source is the index the mirror re-reads blocks from when it falls behind.
	Source interface {
		Cursor(ctx context.Context) (model.Cursor, error)
		ProcessedBlock(ctx context.Context, height int64) (*chain.ProcessedBlock, error)
	}

	// Queue buffers processed blocks between the cursor and the repository.
	Queue interface {
		Start(ctx context.Context)
		Stop()
		Add(ctx context.Context, item *chain.ProcessedBlock) error
		Flush(ctx context.Context) error
	}

	Metrics interface {
		ObserveMirror(operation string, err error, started time.Time)
	}
)
