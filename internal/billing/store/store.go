package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/billing"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
	wostore "github.com/MrJamesThe3rd/garage/internal/workorder/store"
)

var (
	invoiceColumns = apperr.Columns{
		"invoices_work_order_id_key":  "work_order_id",
		"invoices_work_order_id_fkey": "work_order_id",
		"invoices_total_amount_check": "total_amount",
	}

	paymentColumns = apperr.Columns{
		"payments_invoice_id_fkey": "invoice_id",
		"payments_amount_check":    "amount",
		"payments_method_check":    "method",
		"payments_reference_key":   "reference",
	}
)

type scanner interface {
	Scan(dest ...any) error
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectInvoiceColumns = `id, work_order_id, issued_at, due_date, total_amount, paid, paid_at`

func scanInvoice(s scanner) (*billing.Invoice, error) {
	var inv billing.Invoice

	if err := s.Scan(
		&inv.ID, &inv.WorkOrderID, &inv.IssuedAt, &inv.DueDate, &inv.TotalAmount, &inv.Paid, &inv.PaidAt,
	); err != nil {
		return nil, err
	}

	return &inv, nil
}

func getInvoice(ctx context.Context, q wostore.Querier, query string, arg int64) (*billing.Invoice, error) {
	inv, err := scanInvoice(q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (*billing.Invoice, error) {
	return getInvoice(ctx, s.db, `SELECT `+selectInvoiceColumns+` FROM invoices WHERE id = $1`, id)
}

func (s *Store) InvoiceForWorkOrder(ctx context.Context, workOrderID int64) (*billing.Invoice, error) {
	return getInvoice(ctx, s.db, `SELECT `+selectInvoiceColumns+` FROM invoices WHERE work_order_id = $1`, workOrderID)
}

func (s *Store) ListInvoices(ctx context.Context, filter billing.ListFilter) ([]*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices`

	var args []any

	if filter.Paid != nil {
		query += ` WHERE paid = $1`

		args = append(args, *filter.Paid)
	}

	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var out []*billing.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		out = append(out, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return out, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *billing.Payment) error {
	query := `
		INSERT INTO payments (invoice_id, amount, method, reference, paid_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, p.InvoiceID, p.Amount, p.Method, p.Reference, p.PaidAt).Scan(&p.ID)
	if err != nil {
		err = apperr.FromPg("payment", paymentColumns, err)

		var rerr *apperr.ReferenceError
		if errors.As(err, &rerr) {
			rerr.ID = p.InvoiceID
		}

		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) ListPayments(ctx context.Context, invoiceID int64) ([]*billing.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, method, reference, paid_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY paid_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var out []*billing.Payment

	for rows.Next() {
		var p billing.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.Reference, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		out = append(out, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return out, nil
}

func (s *Store) PaymentTotals(ctx context.Context, invoiceID int64) (decimal.Decimal, int, error) {
	return paymentTotals(ctx, s.db, invoiceID)
}

func paymentTotals(ctx context.Context, q wostore.Querier, invoiceID int64) (decimal.Decimal, int, error) {
	var (
		sum decimal.Decimal
		n   int
	)

	query := `SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM payments WHERE invoice_id = $1`
	if err := q.QueryRowContext(ctx, query, invoiceID).Scan(&sum, &n); err != nil {
		return decimal.Zero, 0, fmt.Errorf("summing payments: %w", err)
	}

	return sum, n, nil
}

func (s *Store) Begin(ctx context.Context) (billing.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning billing tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

type tx struct {
	tx *sql.Tx
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) LockWorkOrder(ctx context.Context, workOrderID int64) error {
	var id int64

	err := t.tx.QueryRowContext(ctx, `SELECT id FROM work_orders WHERE id = $1 FOR UPDATE`, workOrderID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFound
		}

		return fmt.Errorf("locking work order: %w", err)
	}

	return nil
}

func (t *tx) InvoiceForWorkOrder(ctx context.Context, workOrderID int64) (*billing.Invoice, error) {
	return getInvoice(ctx, t.tx, `SELECT `+selectInvoiceColumns+` FROM invoices WHERE work_order_id = $1`, workOrderID)
}

func (t *tx) ListItems(ctx context.Context, workOrderID int64) ([]*workorder.Item, error) {
	return wostore.QueryItems(ctx, t.tx, workOrderID)
}

func (t *tx) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	query := `
		INSERT INTO invoices (work_order_id, issued_at, due_date, total_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := t.tx.QueryRowContext(ctx, query, inv.WorkOrderID, inv.IssuedAt, inv.DueDate, inv.TotalAmount).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", apperr.FromPg("invoice", invoiceColumns, err))
	}

	return nil
}

func (t *tx) LockInvoice(ctx context.Context, id int64) (*billing.Invoice, error) {
	return getInvoice(ctx, t.tx, `SELECT `+selectInvoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (t *tx) PaymentTotals(ctx context.Context, invoiceID int64) (decimal.Decimal, int, error) {
	return paymentTotals(ctx, t.tx, invoiceID)
}

func (t *tx) MarkPaid(ctx context.Context, id int64, at time.Time) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE invoices SET paid = TRUE, paid_at = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("marking invoice paid: %w", err)
	}

	return nil
}
