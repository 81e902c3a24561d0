package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/cursor"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Advancer moves the index forward by at most one block.
type Advancer interface {
	Advance(ctx context.Context) (cursor.Outcome, error)
}

// IndexerMetrics records the result of every loop iteration.
type IndexerMetrics interface {
	ObserveAdvance(outcome cursor.Outcome, err error, started time.Time)
}
