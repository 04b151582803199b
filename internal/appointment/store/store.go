package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/appointment"
)

var columns = apperr.Columns{
	"appointments_client_id_fkey":  "client_id",
	"appointments_vehicle_id_fkey": "vehicle_id",
	"appointments_status_check":    "status",
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `id, client_id, vehicle_id, scheduled_at, reason, status`

func scanAppointment(s scanner) (*appointment.Appointment, error) {
	var a appointment.Appointment

	if err := s.Scan(&a.ID, &a.ClientID, &a.VehicleID, &a.ScheduledAt, &a.Reason, &a.Status); err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *Store) VehicleOwner(ctx context.Context, vehicleID int64) (int64, error) {
	var owner int64

	err := s.db.QueryRowContext(ctx, `SELECT client_id FROM vehicles WHERE id = $1`, vehicleID).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrNotFound
		}

		return 0, fmt.Errorf("getting vehicle owner: %w", err)
	}

	return owner, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *appointment.Appointment) error {
	query := `
		INSERT INTO appointments (client_id, vehicle_id, scheduled_at, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, a.ClientID, a.VehicleID, a.ScheduledAt, a.Reason, a.Status).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("creating appointment: %w", apperr.FromPg("appointment", columns, err))
	}

	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (*appointment.Appointment, error) {
	a, err := scanAppointment(s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM appointments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting appointment: %w", err)
	}

	return a, nil
}

func (s *Store) ListForClient(ctx context.Context, clientID int64) ([]*appointment.Appointment, error) {
	query := `SELECT ` + selectColumns + ` FROM appointments WHERE client_id = $1 ORDER BY scheduled_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	var out []*appointment.Appointment

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}

	return out, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status appointment.Status) (*appointment.Appointment, error) {
	query := `UPDATE appointments SET status = $1 WHERE id = $2 RETURNING ` + selectColumns

	a, err := scanAppointment(s.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("updating appointment status: %w", apperr.FromPg("appointment", columns, err))
	}

	return a, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
