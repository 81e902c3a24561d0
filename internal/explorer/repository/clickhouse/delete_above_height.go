package clickhouse

import (
	"context"
	"fmt"
	"time"
)

var mirrorTables = []string{
	"explorer_transaction_outputs",
	"explorer_transaction_inputs",
	"explorer_transactions",
	"explorer_blocks",
}

// DeleteAboveHeight removes every mirrored row above height. Child tables go first
// so a partial failure never leaves transactions without their block row.
func (r *Repository) DeleteAboveHeight(ctx context.Context, height int64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("delete_above_height", err, start)
	}()

	for _, table := range mirrorTables {
		query := fmt.Sprintf("DELETE FROM %s WHERE network = ? AND height > ?", table)
		if err = r.conn.Exec(ctx, query, string(r.network), height); err != nil {
			err = fmt.Errorf("delete %s above %d: %w", table, height, err)
			return err
		}
	}
	return nil
}
