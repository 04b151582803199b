package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/report"
)

// costs derives every work order's cost from its items. Work orders without
// items cost zero.
const costs = `
	costs AS (
		SELECT wo.id AS work_order_id, wo.client_id, wo.status,
		       COALESCE(SUM(i.unit_price * i.quantity + i.hours * COALESCE(m.hourly_rate, 0)), 0) AS cost
		FROM work_orders wo
		LEFT JOIN work_order_items i ON i.work_order_id = wo.id
		LEFT JOIN mechanics m ON m.id = i.mechanic_id
		GROUP BY wo.id, wo.client_id, wo.status
	)`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// collect runs query and scans each row with scan.
func collect[T any](ctx context.Context, db *sql.DB, name string, scan func(*sql.Rows, *T) error, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", name, err)
	}
	defer rows.Close()

	out := []T{}

	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", name, err)
		}

		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", name, err)
	}

	return out, nil
}

func (s *Store) OrdersPerClient(ctx context.Context) ([]report.ClientOrders, error) {
	query := `
		SELECT c.id, c.name, COUNT(wo.id) AS orders
		FROM clients c
		LEFT JOIN work_orders wo ON wo.client_id = c.id
		GROUP BY c.id, c.name
		ORDER BY orders DESC, c.id ASC
	`

	return collect(ctx, s.db, "orders per client", func(r *sql.Rows, v *report.ClientOrders) error {
		return r.Scan(&v.ClientID, &v.Name, &v.Orders)
	}, query)
}

func (s *Store) LowStockWorkOrders(ctx context.Context, threshold int) ([]report.LowStockUse, error) {
	query := `
		SELECT DISTINCT i.work_order_id, p.id, p.sku, p.name, inv.quantity
		FROM work_order_items i
		JOIN parts p ON p.id = i.part_id
		JOIN inventory inv ON inv.part_id = p.id
		WHERE inv.quantity < $1
		ORDER BY i.work_order_id ASC, p.id ASC
	`

	return collect(ctx, s.db, "low stock work orders", func(r *sql.Rows, v *report.LowStockUse) error {
		return r.Scan(&v.WorkOrderID, &v.PartID, &v.SKU, &v.PartName, &v.OnHand)
	}, query, threshold)
}

func (s *Store) WorkOrderCosts(ctx context.Context) ([]report.WorkOrderCost, error) {
	query := `WITH` + costs + `
		SELECT work_order_id, client_id, status, cost
		FROM costs
		ORDER BY work_order_id ASC
	`

	return collect(ctx, s.db, "work order costs", func(r *sql.Rows, v *report.WorkOrderCost) error {
		return r.Scan(&v.WorkOrderID, &v.ClientID, &v.Status, &v.Cost)
	}, query)
}

func (s *Store) MechanicHours(ctx context.Context) ([]report.MechanicHours, error) {
	query := `
		SELECT m.id, m.name, SUM(i.hours) AS hours
		FROM mechanics m
		JOIN work_order_items i ON i.mechanic_id = m.id AND i.kind = 'service'
		GROUP BY m.id, m.name
		HAVING SUM(i.hours) > 0
		ORDER BY hours DESC, m.id ASC
	`

	return collect(ctx, s.db, "mechanic hours", func(r *sql.Rows, v *report.MechanicHours) error {
		return r.Scan(&v.MechanicID, &v.Name, &v.Hours)
	}, query)
}

func (s *Store) PartsUsage(ctx context.Context) ([]report.PartUsage, error) {
	query := `
		SELECT p.id, p.sku, p.name, SUM(i.quantity) AS used
		FROM parts p
		JOIN work_order_items i ON i.part_id = p.id AND i.kind = 'part'
		GROUP BY p.id, p.sku, p.name
		ORDER BY used DESC, p.id ASC
	`

	return collect(ctx, s.db, "parts usage", func(r *sql.Rows, v *report.PartUsage) error {
		return r.Scan(&v.PartID, &v.SKU, &v.Name, &v.Quantity)
	}, query)
}

// BilledClients sums invoices and payments in separate subqueries so that a
// client's payments are not multiplied by its invoice count.
func (s *Store) BilledClients(ctx context.Context, threshold decimal.Decimal) ([]report.BilledClient, error) {
	query := `
		WITH invoiced AS (
			SELECT wo.client_id, SUM(inv.total_amount) AS amount
			FROM invoices inv
			JOIN work_orders wo ON wo.id = inv.work_order_id
			GROUP BY wo.client_id
		),
		paid AS (
			SELECT wo.client_id, SUM(p.amount) AS amount
			FROM payments p
			JOIN invoices inv ON inv.id = p.invoice_id
			JOIN work_orders wo ON wo.id = inv.work_order_id
			GROUP BY wo.client_id
		)
		SELECT c.id, c.name, invoiced.amount, COALESCE(paid.amount, 0)
		FROM clients c
		JOIN invoiced ON invoiced.client_id = c.id
		LEFT JOIN paid ON paid.client_id = c.id
		WHERE invoiced.amount > $1
		ORDER BY invoiced.amount DESC, c.id ASC
	`

	return collect(ctx, s.db, "billed clients", func(r *sql.Rows, v *report.BilledClient) error {
		return r.Scan(&v.ClientID, &v.Name, &v.Invoiced, &v.Paid)
	}, query, threshold)
}

func (s *Store) WorkOrderBreakdown(ctx context.Context, workOrderID int64) ([]report.LineItem, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM work_orders WHERE id = $1)`, workOrderID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking work order: %w", err)
	}

	if !exists {
		return nil, apperr.ErrNotFound
	}

	query := `
		SELECT i.id, i.kind, i.description, i.quantity, i.unit_price, i.hours,
		       COALESCE(m.hourly_rate, 0) AS rate,
		       i.unit_price * i.quantity + i.hours * COALESCE(m.hourly_rate, 0) AS subtotal
		FROM work_order_items i
		LEFT JOIN mechanics m ON m.id = i.mechanic_id
		WHERE i.work_order_id = $1
		ORDER BY subtotal DESC, i.id ASC
	`

	return collect(ctx, s.db, "work order breakdown", func(r *sql.Rows, v *report.LineItem) error {
		return r.Scan(&v.ItemID, &v.Kind, &v.Description, &v.Quantity, &v.UnitPrice, &v.Hours, &v.MechanicRate, &v.Subtotal)
	}, query, workOrderID)
}

func (s *Store) LowStockParts(ctx context.Context, threshold int) ([]report.LowStockPart, error) {
	query := `
		SELECT p.id, p.sku, p.name, inv.quantity, COUNT(DISTINCT i.work_order_id)
		FROM parts p
		JOIN inventory inv ON inv.part_id = p.id
		LEFT JOIN work_order_items i ON i.part_id = p.id
		WHERE inv.quantity < $1
		GROUP BY p.id, p.sku, p.name, inv.quantity
		ORDER BY p.id ASC
	`

	return collect(ctx, s.db, "low stock parts", func(r *sql.Rows, v *report.LowStockPart) error {
		return r.Scan(&v.PartID, &v.SKU, &v.Name, &v.OnHand, &v.WorkOrders)
	}, query, threshold)
}

func (s *Store) MechanicRevenue(ctx context.Context) ([]report.MechanicRevenue, error) {
	query := `
		SELECT m.id, m.name,
		       SUM(i.hours * m.hourly_rate) AS labor,
		       SUM(i.unit_price * i.quantity) AS lines,
		       SUM(i.hours * m.hourly_rate + i.unit_price * i.quantity) AS total
		FROM mechanics m
		JOIN work_order_items i ON i.mechanic_id = m.id
		GROUP BY m.id, m.name
		ORDER BY total DESC, m.id ASC
	`

	return collect(ctx, s.db, "mechanic revenue", func(r *sql.Rows, v *report.MechanicRevenue) error {
		return r.Scan(&v.MechanicID, &v.Name, &v.Labor, &v.Lines, &v.Total)
	}, query)
}

func (s *Store) TopClients(ctx context.Context, n int) ([]report.TopClient, error) {
	query := `WITH` + costs + `
		SELECT c.id, c.name, COUNT(*) AS orders, ROUND(AVG(costs.cost), 4) AS avg_value
		FROM clients c
		JOIN costs ON costs.client_id = c.id
		GROUP BY c.id, c.name
		ORDER BY orders DESC, avg_value DESC, c.id ASC
		LIMIT $1
	`

	return collect(ctx, s.db, "top clients", func(r *sql.Rows, v *report.TopClient) error {
		return r.Scan(&v.ClientID, &v.Name, &v.Orders, &v.AvgOrderValue)
	}, query, n)
}
