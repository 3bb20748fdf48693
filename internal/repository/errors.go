package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notes-manager-server/internal/database"
)

var ErrNotFound = errors.New("record not found")

// withTx runs fn inside a transaction. The transaction is rolled back when
// fn or the commit fails, and the original error is returned.
func withTx(ctx context.Context, db *database.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
