package processor

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// OutputLookup resolves previously persisted outputs. Missing outpoints are absent from the result.
	OutputLookup interface {
		Outputs(ctx context.Context, refs []model.OutPoint) (map[model.OutPoint]model.TransactionOutput, error)
	}
	ScriptDecoder interface {
		Decode(scriptHex string) (bitcoin.DecodedScript, error)
	}
	Metrics interface {
		ObserveProcessBlock(err error, txs int, started time.Time)
		ObserveResolveInputs(err error, refs int, started time.Time)
	}
)
