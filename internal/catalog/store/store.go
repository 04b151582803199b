package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/catalog"
)

var partColumns = apperr.Columns{
	"parts_sku_key":            "sku",
	"parts_supplier_id_fkey":   "supplier_id",
	"parts_cost_price_check":   "cost_price",
	"parts_sale_price_check":   "sale_price",
	"inventory_quantity_check": "initial_quantity",
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

func (s *Store) CreateSupplier(ctx context.Context, sup *catalog.Supplier) error {
	query := `INSERT INTO suppliers (name, contact) VALUES ($1, $2) RETURNING id, created_at`

	if err := s.db.QueryRowContext(ctx, query, sup.Name, sup.Contact).Scan(&sup.ID, &sup.CreatedAt); err != nil {
		return fmt.Errorf("creating supplier: %w", err)
	}

	return nil
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (*catalog.Supplier, error) {
	query := `SELECT id, name, contact, created_at FROM suppliers WHERE id = $1`

	var sup catalog.Supplier

	err := s.db.QueryRowContext(ctx, query, id).Scan(&sup.ID, &sup.Name, &sup.Contact, &sup.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting supplier: %w", err)
	}

	return &sup, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]*catalog.Supplier, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, contact, created_at FROM suppliers ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*catalog.Supplier

	for rows.Next() {
		var sup catalog.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Contact, &sup.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning supplier: %w", err)
		}

		suppliers = append(suppliers, &sup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating suppliers: %w", err)
	}

	return suppliers, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		// parts.supplier_id is ON DELETE RESTRICT.
		if apperr.IsReference(apperr.FromPg("supplier", nil, err)) {
			return &apperr.ConflictError{Entity: "supplier", Field: "parts", Value: strconv.FormatInt(id, 10)}
		}

		return fmt.Errorf("deleting supplier: %w", err)
	}

	return requireOne(res, "deleting supplier")
}

const selectPartColumns = `id, supplier_id, sku, name, description, cost_price, sale_price, created_at, updated_at`

func scanPart(s scanner) (*catalog.Part, error) {
	var p catalog.Part

	if err := s.Scan(
		&p.ID, &p.SupplierID, &p.SKU, &p.Name, &p.Description,
		&p.CostPrice, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) CreatePart(ctx context.Context, p *catalog.Part, quantity int, location string) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	partQuery := `
		INSERT INTO parts (supplier_id, sku, name, description, cost_price, sale_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, partQuery,
		p.SupplierID, p.SKU, p.Name, p.Description, p.CostPrice, p.SalePrice,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating part: %w", partError(err, p))
	}

	inventoryQuery := `INSERT INTO inventory (part_id, quantity, location) VALUES ($1, $2, $3)`
	if _, err := dbTx.ExecContext(ctx, inventoryQuery, p.ID, quantity, location); err != nil {
		return fmt.Errorf("creating inventory record: %w", partError(err, p))
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func partError(err error, p *catalog.Part) error {
	err = apperr.FromPg("part", partColumns, err)

	var cerr *apperr.ConflictError
	if errors.As(err, &cerr) && cerr.Field == "sku" {
		cerr.Value = p.SKU
	}

	var rerr *apperr.ReferenceError
	if errors.As(err, &rerr) && rerr.Field == "supplier_id" {
		rerr.ID = p.SupplierID
	}

	return err
}

func (s *Store) GetPart(ctx context.Context, id int64) (*catalog.Part, error) {
	query := `SELECT ` + selectPartColumns + ` FROM parts WHERE id = $1`

	p, err := scanPart(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting part: %w", err)
	}

	return p, nil
}

func (s *Store) ListParts(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Part, error) {
	query := `SELECT ` + selectPartColumns + ` FROM parts`

	var args []any

	if filter.SupplierID != nil {
		query += ` WHERE supplier_id = $1`

		args = append(args, *filter.SupplierID)
	}

	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing parts: %w", err)
	}
	defer rows.Close()

	var parts []*catalog.Part

	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning part: %w", err)
		}

		parts = append(parts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parts: %w", err)
	}

	return parts, nil
}

func (s *Store) UpdatePrices(ctx context.Context, id int64, cost, sale decimal.Decimal) (*catalog.Part, error) {
	query := `
		UPDATE parts
		SET cost_price = $1, sale_price = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + selectPartColumns

	p, err := scanPart(s.db.QueryRowContext(ctx, query, cost, sale, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("updating part prices: %w", apperr.FromPg("part", partColumns, err))
	}

	return p, nil
}

func (s *Store) DeletePart(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting part: %w", err)
	}

	return requireOne(res, "deleting part")
}

// UpsertPriceList runs the whole list in one transaction. The conditional
// DO UPDATE only touches rows already owned by the supplier; a SKU owned by
// someone else returns no row and aborts the import.
func (s *Store) UpsertPriceList(ctx context.Context, supplierID int64, entries []catalog.PriceListEntry) (*catalog.ImportResult, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	upsert := `
		INSERT INTO parts (supplier_id, sku, name, description, cost_price, sale_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (sku) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    cost_price = EXCLUDED.cost_price,
		    sale_price = EXCLUDED.sale_price,
		    updated_at = NOW()
		WHERE parts.supplier_id = EXCLUDED.supplier_id
		RETURNING ` + selectPartColumns + `, (xmax = 0) AS inserted
	`

	result := &catalog.ImportResult{Parts: make([]*catalog.Part, 0, len(entries))}

	for _, e := range entries {
		var (
			p        catalog.Part
			inserted bool
		)

		err := dbTx.QueryRowContext(ctx, upsert,
			supplierID, e.SKU, e.Name, e.Description, e.CostPrice, e.SalePrice,
		).Scan(
			&p.ID, &p.SupplierID, &p.SKU, &p.Name, &p.Description,
			&p.CostPrice, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt, &inserted,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, &apperr.ConflictError{Entity: "part", Field: "sku", Value: e.SKU}
			}

			return nil, fmt.Errorf("upserting part %s: %w", e.SKU, apperr.FromPg("part", partColumns, err))
		}

		if inserted {
			if _, err := dbTx.ExecContext(ctx, `INSERT INTO inventory (part_id) VALUES ($1)`, p.ID); err != nil {
				return nil, fmt.Errorf("creating inventory record for %s: %w", e.SKU, err)
			}

			result.Created++
		} else {
			result.Updated++
		}

		result.Parts = append(result.Parts, &p)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing price list: %w", err)
	}

	return result, nil
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
