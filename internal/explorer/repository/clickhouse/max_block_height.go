package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

// MaxBlockHeight returns the highest mirrored height, or GenesisNotIndexed when
// the mirror is empty.
func (r *Repository) MaxBlockHeight(ctx context.Context) (int64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_block_height", err, start)
	}()

	const query = `
SELECT if(count() = 0, toInt64(-1), max(height)) AS max_height
FROM explorer_blocks
WHERE network = ?`

	rows, err := r.conn.Query(ctx, query, string(r.network))
	if err != nil {
		err = fmt.Errorf("query max block height: %w", err)
		return model.GenesisNotIndexed, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		err = fmt.Errorf("max block height not found")
		return model.GenesisNotIndexed, err
	}

	var height int64
	if err = rows.Scan(&height); err != nil {
		err = fmt.Errorf("scan max block height: %w", err)
		return model.GenesisNotIndexed, err
	}
	if err = rows.Err(); err != nil {
		err = fmt.Errorf("iterate max block height: %w", err)
		return model.GenesisNotIndexed, err
	}
	return height, nil
}
