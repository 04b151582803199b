package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/inventory"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, partID int64) (*inventory.Record, error) {
	query := `SELECT id, part_id, quantity, location, updated_at FROM inventory WHERE part_id = $1`

	var r inventory.Record

	err := s.db.QueryRowContext(ctx, query, partID).Scan(&r.ID, &r.PartID, &r.Quantity, &r.Location, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting inventory record: %w", err)
	}

	return &r, nil
}

func (s *Store) Adjust(ctx context.Context, partID int64, delta int) (int, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var qty int

	err = dbTx.QueryRowContext(ctx, `SELECT quantity FROM inventory WHERE part_id = $1 FOR UPDATE`, partID).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrNotFound
		}

		return 0, fmt.Errorf("locking inventory record: %w", err)
	}

	if qty+delta < 0 {
		return 0, inventory.ErrInsufficientStock
	}

	if qty+delta > math.MaxInt32 {
		return 0, inventory.ErrQuantityOverflow
	}

	qty += delta

	update := `UPDATE inventory SET quantity = $1, updated_at = NOW() WHERE part_id = $2`
	if _, err := dbTx.ExecContext(ctx, update, qty, partID); err != nil {
		return 0, fmt.Errorf("updating quantity: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return qty, nil
}

func (s *Store) ListBelow(ctx context.Context, threshold int) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT part_id FROM inventory WHERE quantity < $1 ORDER BY part_id ASC`, threshold)
	if err != nil {
		return nil, fmt.Errorf("listing low stock: %w", err)
	}
	defer rows.Close()

	ids := []int64{}

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning part id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating low stock: %w", err)
	}

	return ids, nil
}

func (s *Store) SetLocation(ctx context.Context, partID int64, location string) (*inventory.Record, error) {
	query := `
		UPDATE inventory SET location = $1, updated_at = NOW()
		WHERE part_id = $2
		RETURNING id, part_id, quantity, location, updated_at
	`

	var r inventory.Record

	err := s.db.QueryRowContext(ctx, query, location, partID).Scan(&r.ID, &r.PartID, &r.Quantity, &r.Location, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("setting location: %w", err)
	}

	return &r, nil
}
