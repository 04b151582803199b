package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/mechanic"
)

var columns = apperr.Columns{"mechanics_hourly_rate_check": "hourly_rate"}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, name, hire_date, hourly_rate, created_at`

func scanMechanic(s scanner) (*mechanic.Mechanic, error) {
	var m mechanic.Mechanic

	if err := s.Scan(&m.ID, &m.Name, &m.HireDate, &m.HourlyRate, &m.CreatedAt); err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Store) CreateMechanic(ctx context.Context, m *mechanic.Mechanic) error {
	query := `
		INSERT INTO mechanics (name, hire_date, hourly_rate)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, m.Name, m.HireDate, m.HourlyRate).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating mechanic: %w", apperr.FromPg("mechanic", columns, err))
	}

	return nil
}

func (s *Store) GetMechanic(ctx context.Context, id int64) (*mechanic.Mechanic, error) {
	query := `SELECT ` + selectColumns + ` FROM mechanics WHERE id = $1`

	m, err := scanMechanic(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting mechanic: %w", err)
	}

	return m, nil
}

func (s *Store) ListMechanics(ctx context.Context) ([]*mechanic.Mechanic, error) {
	query := `SELECT ` + selectColumns + ` FROM mechanics ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing mechanics: %w", err)
	}
	defer rows.Close()

	var mechanics []*mechanic.Mechanic

	for rows.Next() {
		m, err := scanMechanic(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mechanic: %w", err)
		}

		mechanics = append(mechanics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mechanics: %w", err)
	}

	return mechanics, nil
}

func (s *Store) UpdateMechanic(ctx context.Context, m *mechanic.Mechanic) error {
	query := `UPDATE mechanics SET name = $1, hire_date = $2, hourly_rate = $3 WHERE id = $4`

	res, err := s.db.ExecContext(ctx, query, m.Name, m.HireDate, m.HourlyRate, m.ID)
	if err != nil {
		return fmt.Errorf("updating mechanic: %w", apperr.FromPg("mechanic", columns, err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating mechanic: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// DeleteMechanic keeps past service items; their mechanic_id is set to NULL
// and they stop contributing labor to totals.
func (s *Store) DeleteMechanic(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM mechanics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting mechanic: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting mechanic: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
