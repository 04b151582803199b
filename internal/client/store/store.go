package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/client"
)

var (
	clientColumns = apperr.Columns{
		"clients_email_key":    "email",
		"clients_tax_id_check": "tax_id",
		"clients_kind_check":   "kind",
	}
	vehicleColumns = apperr.Columns{
		"vehicles_plate_key":      "plate",
		"vehicles_vin_key":        "vin",
		"vehicles_client_id_fkey": "client_id",
	}
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectClientColumns = `id, kind, name, email, phone, personal_tax_id, business_tax_id, created_at, updated_at`

func scanClient(s scanner) (*client.Client, error) {
	var (
		c    client.Client
		kind string
	)

	if err := s.Scan(
		&c.ID, &kind, &c.Name, &c.Email, &c.Phone,
		&c.PersonalTaxID, &c.BusinessTaxID, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Kind = client.Kind(kind)

	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (kind, name, email, phone, personal_tax_id, business_tax_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Kind, c.Name, c.Email, c.Phone, c.PersonalTaxID, c.BusinessTaxID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", apperr.FromPg("client", clientColumns, err))
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET kind = $1, name = $2, email = $3, phone = $4, personal_tax_id = $5, business_tax_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Kind, c.Name, c.Email, c.Phone, c.PersonalTaxID, c.BusinessTaxID, c.ID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFound
		}

		return fmt.Errorf("updating client: %w", apperr.FromPg("client", clientColumns, err))
	}

	return nil
}

// DeleteClient relies on ON DELETE CASCADE to remove vehicles, appointments
// and work orders with everything they own.
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, `DELETE FROM clients WHERE id = $1`, id, "deleting client")
}

func (s *Store) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1 AND id <> $2)`

	var taken bool
	if err := s.db.QueryRowContext(ctx, query, email, exceptID).Scan(&taken); err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}

	return taken, nil
}

const selectVehicleColumns = `id, client_id, plate, vin, brand, model, year, color, created_at`

func scanVehicle(s scanner) (*client.Vehicle, error) {
	var v client.Vehicle

	if err := s.Scan(
		&v.ID, &v.ClientID, &v.Plate, &v.VIN, &v.Brand, &v.Model, &v.Year, &v.Color, &v.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &v, nil
}

func (s *Store) CreateVehicle(ctx context.Context, v *client.Vehicle) error {
	query := `
		INSERT INTO vehicles (client_id, plate, vin, brand, model, year, color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		v.ClientID, v.Plate, v.VIN, v.Brand, v.Model, v.Year, v.Color,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		err = apperr.FromPg("vehicle", vehicleColumns, err)

		var refErr *apperr.ReferenceError
		if errors.As(err, &refErr) {
			refErr.ID = v.ClientID
		}

		return fmt.Errorf("creating vehicle: %w", err)
	}

	return nil
}

func (s *Store) GetVehicle(ctx context.Context, id int64) (*client.Vehicle, error) {
	query := `SELECT ` + selectVehicleColumns + ` FROM vehicles WHERE id = $1`

	v, err := scanVehicle(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting vehicle: %w", err)
	}

	return v, nil
}

func (s *Store) ListVehicles(ctx context.Context, clientID int64) ([]*client.Vehicle, error) {
	query := `SELECT ` + selectVehicleColumns + ` FROM vehicles WHERE client_id = $1 ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*client.Vehicle

	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}

		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}

	return vehicles, nil
}

func (s *Store) UpdateVehicle(ctx context.Context, v *client.Vehicle) error {
	query := `
		UPDATE vehicles
		SET plate = $1, vin = $2, brand = $3, model = $4, year = $5, color = $6
		WHERE id = $7
	`

	res, err := s.db.ExecContext(ctx, query, v.Plate, v.VIN, v.Brand, v.Model, v.Year, v.Color, v.ID)
	if err != nil {
		return fmt.Errorf("updating vehicle: %w", apperr.FromPg("vehicle", vehicleColumns, err))
	}

	return requireOne(res, "updating vehicle")
}

func (s *Store) DeleteVehicle(ctx context.Context, id int64) error {
	return deleteByID(ctx, s.db, `DELETE FROM vehicles WHERE id = $1`, id, "deleting vehicle")
}

func deleteByID(ctx context.Context, db *sql.DB, query string, id int64, op string) error {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return requireOne(res, op)
}

func requireOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
