package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/event"
	"github.com/MrJamesThe3rd/garage/internal/metrics"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	GetInvoice(ctx context.Context, id int64) (*Invoice, error)
	InvoiceForWorkOrder(ctx context.Context, workOrderID int64) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)

	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, invoiceID int64) ([]*Payment, error)
	// PaymentTotals returns the sum and count of payments on an invoice.
	PaymentTotals(ctx context.Context, invoiceID int64) (decimal.Decimal, int, error)

	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	LockWorkOrder(ctx context.Context, workOrderID int64) error
	InvoiceForWorkOrder(ctx context.Context, workOrderID int64) (*Invoice, error)
	ListItems(ctx context.Context, workOrderID int64) ([]*workorder.Item, error)
	CreateInvoice(ctx context.Context, inv *Invoice) error

	LockInvoice(ctx context.Context, id int64) (*Invoice, error)
	PaymentTotals(ctx context.Context, invoiceID int64) (decimal.Decimal, int, error)
	MarkPaid(ctx context.Context, id int64, at time.Time) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo    Repository
	dueDays int
	now     func() time.Time
	metrics *metrics.Metrics

	invalidator event.Invalidator
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithInvalidator registers inv to be told about every committed write.
func WithInvalidator(inv event.Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, dueDays int, opts ...Option) *Service {
	s := &Service{repo: repo, dueDays: dueDays, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type ListFilter struct {
	Paid *bool
}

// IssueInvoice bills a work order once, snapshotting its recomputed total.
// The due date is the issue date plus the configured number of days.
func (s *Service) IssueInvoice(ctx context.Context, workOrderID int64) (*Invoice, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin issue invoice: %w", err)
	}
	defer tx.Rollback()

	if err := tx.LockWorkOrder(ctx, workOrderID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Missing("invoice", "work_order_id", workOrderID)
		}

		return nil, err
	}

	existing, err := tx.InvoiceForWorkOrder(ctx, workOrderID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("checking existing invoice: %w", err)
	}

	if existing != nil {
		return nil, &apperr.ConflictError{
			Entity: "invoice",
			Field:  "work_order_id",
			Value:  strconv.FormatInt(workOrderID, 10),
		}
	}

	items, err := tx.ListItems(ctx, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	issuedAt := s.now().UTC()
	issueDate := time.Date(issuedAt.Year(), issuedAt.Month(), issuedAt.Day(), 0, 0, 0, 0, time.UTC)

	inv := &Invoice{
		WorkOrderID: workOrderID,
		IssuedAt:    issuedAt,
		DueDate:     issueDate.AddDate(0, 0, s.dueDays),
		TotalAmount: workorder.Total(items),
	}
	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit issue invoice: %w", err)
	}

	s.metrics.InvoiceIssued()
	event.Invalidate(ctx, s.invalidator)

	return inv, nil
}

// RecordPayment stores a payment against an invoice. It neither checks the
// outstanding balance nor marks the invoice paid.
func (s *Service) RecordPayment(ctx context.Context, invoiceID int64, amount decimal.Decimal, method Method) (*Payment, error) {
	violations := map[string]string{}

	if !amount.IsPositive() {
		violations["amount"] = "must be greater than 0"
	} else if reason := apperr.Amount.Check(amount); reason != "" {
		violations["amount"] = reason
	}

	if !method.Valid() {
		violations["method"] = "must be one of cash card pix transfer"
	}

	if len(violations) > 0 {
		return nil, &apperr.ValidationError{Entity: "payment", Violations: violations}
	}

	if _, err := s.repo.GetInvoice(ctx, invoiceID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Missing("payment", "invoice_id", invoiceID)
		}

		return nil, err
	}

	p := &Payment{
		InvoiceID: invoiceID,
		Amount:    amount,
		Method:    method,
		Reference: uuid.New(),
		PaidAt:    s.now().UTC(),
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	s.metrics.PaymentRecorded(string(method))
	event.Invalidate(ctx, s.invalidator)

	return p, nil
}

func (s *Service) GetInvoice(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) InvoiceForWorkOrder(ctx context.Context, workOrderID int64) (*Invoice, error) {
	return s.repo.InvoiceForWorkOrder(ctx, workOrderID)
}

func (s *Service) ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx, filter)
}

func (s *Service) ListPayments(ctx context.Context, invoiceID int64) ([]*Payment, error) {
	if _, err := s.repo.GetInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, invoiceID)
}

func (s *Service) Summary(ctx context.Context, invoiceID int64) (*Summary, error) {
	inv, err := s.repo.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	paid, n, err := s.repo.PaymentTotals(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("summing payments: %w", err)
	}

	return summarize(inv, paid, n), nil
}

// MarkPaid flags the invoice as paid once recorded payments cover its total.
// Marking an already paid invoice is a no-op.
func (s *Service) MarkPaid(ctx context.Context, invoiceID int64) (*Invoice, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin mark paid: %w", err)
	}
	defer tx.Rollback()

	inv, err := tx.LockInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Paid {
		return inv, nil
	}

	paid, n, err := tx.PaymentTotals(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("summing payments: %w", err)
	}

	if sum := summarize(inv, paid, n); !sum.Settled {
		return nil, apperr.Invalid("invoice", "paid",
			fmt.Sprintf("payments of %s do not cover total %s", paid.StringFixed(2), inv.TotalAmount.StringFixed(2)))
	}

	at := s.now().UTC()
	if err := tx.MarkPaid(ctx, invoiceID, at); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit mark paid: %w", err)
	}

	event.Invalidate(ctx, s.invalidator)

	inv.Paid = true
	inv.PaidAt = &at

	return inv, nil
}

func summarize(inv *Invoice, paid decimal.Decimal, n int) *Summary {
	outstanding := inv.TotalAmount.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	return &Summary{
		InvoiceID:   inv.ID,
		Total:       inv.TotalAmount,
		PaidAmount:  paid,
		Outstanding: outstanding,
		Payments:    n,
		Settled:     paid.GreaterThanOrEqual(inv.TotalAmount),
	}
}
