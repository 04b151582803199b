package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
)

var (
	workOrderColumns = apperr.Columns{
		"work_orders_client_id_fkey":        "client_id",
		"work_orders_vehicle_id_fkey":       "vehicle_id",
		"work_orders_estimated_hours_check": "estimated_hours",
		"work_orders_total_check":           "total",
		"work_orders_status_check":          "status",
	}

	itemColumns = apperr.Columns{
		"work_order_items_work_order_id_fkey": "work_order_id",
		"work_order_items_part_id_fkey":       "part_id",
		"work_order_items_mechanic_id_fkey":   "mechanic_id",
		"work_order_items_quantity_check":     "quantity",
		"work_order_items_unit_price_check":   "unit_price",
		"work_order_items_hours_check":        "hours",
		"work_order_items_kind_check":         "kind",
	}
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `id, client_id, vehicle_id, created_at, scheduled_date, status, estimated_hours, total, notes`

func scanWorkOrder(s scanner) (*workorder.WorkOrder, error) {
	var wo workorder.WorkOrder

	if err := s.Scan(
		&wo.ID, &wo.ClientID, &wo.VehicleID, &wo.CreatedAt, &wo.ScheduledDate,
		&wo.Status, &wo.EstimatedHours, &wo.Total, &wo.Notes,
	); err != nil {
		return nil, err
	}

	return &wo, nil
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

func (s *Store) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking client: %w", err)
	}

	return exists, nil
}

func (s *Store) CreateWorkOrder(ctx context.Context, wo *workorder.WorkOrder) error {
	query := `
		INSERT INTO work_orders (client_id, vehicle_id, scheduled_date, status, estimated_hours, total, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		wo.ClientID, wo.VehicleID, wo.ScheduledDate, wo.Status, wo.EstimatedHours, wo.Total, wo.Notes,
	).Scan(&wo.ID, &wo.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating work order: %w", apperr.FromPg("work_order", workOrderColumns, err))
	}

	return nil
}

func (s *Store) GetWorkOrder(ctx context.Context, id int64) (*workorder.WorkOrder, error) {
	wo, err := scanWorkOrder(s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM work_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting work order: %w", err)
	}

	return wo, nil
}

func (s *Store) ListWorkOrders(ctx context.Context, filter workorder.ListFilter) ([]*workorder.WorkOrder, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", len(args)))
	}

	if filter.VehicleID != nil {
		args = append(args, *filter.VehicleID)
		conditions = append(conditions, fmt.Sprintf("vehicle_id = $%d", len(args)))
	}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + selectColumns + ` FROM work_orders`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}

	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var out []*workorder.WorkOrder

	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work order: %w", err)
		}

		out = append(out, wo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}

	return out, nil
}

func (s *Store) ListItems(ctx context.Context, workOrderID int64) ([]*workorder.Item, error) {
	return QueryItems(ctx, s.db, workOrderID)
}

func (s *Store) ListStatusLog(ctx context.Context, workOrderID int64) ([]*workorder.StatusLogEntry, error) {
	query := `
		SELECT id, work_order_id, old_status, new_status, changed_at
		FROM work_order_status_log
		WHERE work_order_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing status log: %w", err)
	}
	defer rows.Close()

	var out []*workorder.StatusLogEntry

	for rows.Next() {
		var e workorder.StatusLogEntry
		if err := rows.Scan(&e.ID, &e.WorkOrderID, &e.OldStatus, &e.NewStatus, &e.ChangedAt); err != nil {
			return nil, fmt.Errorf("scanning status log entry: %w", err)
		}

		out = append(out, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status log: %w", err)
	}

	return out, nil
}

// DeleteWorkOrder relies on ON DELETE CASCADE for items, invoice, payments
// and status log.
func (s *Store) DeleteWorkOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting work order: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting work order: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (s *Store) Begin(ctx context.Context) (workorder.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning work order tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

type tx struct {
	tx *sql.Tx
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) LockWorkOrder(ctx context.Context, id int64) (*workorder.WorkOrder, error) {
	query := `SELECT ` + selectColumns + ` FROM work_orders WHERE id = $1 FOR UPDATE`

	wo, err := scanWorkOrder(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("locking work order: %w", err)
	}

	return wo, nil
}

func (t *tx) MechanicExists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := t.tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM mechanics WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking mechanic: %w", err)
	}

	return exists, nil
}

func (t *tx) PartQuantity(ctx context.Context, partID int64) (int, error) {
	var qty int

	err := t.tx.QueryRowContext(ctx, `SELECT quantity FROM inventory WHERE part_id = $1 FOR SHARE`, partID).Scan(&qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrNotFound
		}

		return 0, fmt.Errorf("reading part stock: %w", err)
	}

	return qty, nil
}

func (t *tx) CreateItem(ctx context.Context, item *workorder.Item) error {
	query := `
		INSERT INTO work_order_items (work_order_id, kind, description, part_id, mechanic_id, quantity, unit_price, hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := t.tx.QueryRowContext(ctx, query,
		item.WorkOrderID, item.Kind, item.Description, item.PartID, item.MechanicID,
		item.Quantity, item.UnitPrice, item.Hours,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("creating work order item: %w", apperr.FromPg("work_order_item", itemColumns, err))
	}

	return nil
}

func (t *tx) DeleteItem(ctx context.Context, workOrderID, itemID int64) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM work_order_items WHERE id = $1 AND work_order_id = $2`, itemID, workOrderID)
	if err != nil {
		return fmt.Errorf("deleting work order item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting work order item: %w", err)
	}

	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (t *tx) ListItems(ctx context.Context, workOrderID int64) ([]*workorder.Item, error) {
	return QueryItems(ctx, t.tx, workOrderID)
}

func (t *tx) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE work_orders SET total = $1 WHERE id = $2`, total, id); err != nil {
		return fmt.Errorf("updating total: %w", apperr.FromPg("work_order", workOrderColumns, err))
	}

	return nil
}

func (t *tx) UpdateStatus(ctx context.Context, id int64, status workorder.Status) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE work_orders SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("updating status: %w", apperr.FromPg("work_order", workOrderColumns, err))
	}

	return nil
}

func (t *tx) AppendStatusLog(ctx context.Context, entry *workorder.StatusLogEntry) error {
	query := `
		INSERT INTO work_order_status_log (work_order_id, old_status, new_status)
		VALUES ($1, $2, $3)
		RETURNING id, changed_at
	`

	err := t.tx.QueryRowContext(ctx, query, entry.WorkOrderID, entry.OldStatus, entry.NewStatus).
		Scan(&entry.ID, &entry.ChangedAt)
	if err != nil {
		return fmt.Errorf("appending status log: %w", err)
	}

	return nil
}

// QueryItems loads the items of a work order with each linked mechanic's
// current hourly rate.
func QueryItems(ctx context.Context, q Querier, workOrderID int64) ([]*workorder.Item, error) {
	query := `
		SELECT i.id, i.work_order_id, i.kind, i.description, i.part_id, i.mechanic_id,
		       i.quantity, i.unit_price, i.hours, COALESCE(m.hourly_rate, 0)
		FROM work_order_items i
		LEFT JOIN mechanics m ON m.id = i.mechanic_id
		WHERE i.work_order_id = $1
		ORDER BY i.id ASC
	`

	rows, err := q.QueryContext(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing work order items: %w", err)
	}
	defer rows.Close()

	var items []*workorder.Item

	for rows.Next() {
		var it workorder.Item
		if err := rows.Scan(
			&it.ID, &it.WorkOrderID, &it.Kind, &it.Description, &it.PartID, &it.MechanicID,
			&it.Quantity, &it.UnitPrice, &it.Hours, &it.MechanicRate,
		); err != nil {
			return nil, fmt.Errorf("scanning work order item: %w", err)
		}

		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work order items: %w", err)
	}

	return items, nil
}
