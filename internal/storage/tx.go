// ABOUTME: Scoped transaction helper used by every composite write.
// ABOUTME: Begins, runs the callback, commits, and rolls back on any other exit.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// withTx runs fn inside a transaction. The transaction commits only when fn
// returns nil; any error or panic rolls it back. fn must use tx, not d.db:
// the pool holds a single connection.
func (d *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				d.logger.Warn("rollback failed", "err", rbErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
