package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed seed.sql
var seedSQL string

// Seed loads the demonstration dataset. It expects an empty, migrated schema.
func Seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("loading seed data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed data: %w", err)
	}

	return nil
}

// IsEmpty reports whether no clients exist yet, so seeding is safe.
func IsEmpty(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return false, fmt.Errorf("counting clients: %w", err)
	}

	return n == 0, nil
}
