package clickhouse

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Conn is the part of the ClickHouse driver the repository uses.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Exec(ctx context.Context, query string, args ...any) error
		Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
		Close() error
	}

	// Batch is a prepared insert.
	Batch interface {
		Append(v ...any) error
		Send() error
		Abort() error
	}

	// Metrics observes repository operations for the configured network.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
