package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/billing"
)

// InvoiceResponse is shared with the work order handler, which issues and
// reads invoices through /work-orders/{id}/invoice.
type InvoiceResponse struct {
	ID          int64           `json:"id"`
	WorkOrderID int64           `json:"work_order_id"`
	IssuedAt    time.Time       `json:"issued_at"`
	DueDate     string          `json:"due_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Paid        bool            `json:"paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}

type paymentResponse struct {
	ID        int64           `json:"id"`
	InvoiceID int64           `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    billing.Method  `json:"method"`
	Reference uuid.UUID       `json:"reference"`
	PaidAt    time.Time       `json:"paid_at"`
}

type summaryResponse struct {
	InvoiceID   int64           `json:"invoice_id"`
	Total       decimal.Decimal `json:"total"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Payments    int             `json:"payments"`
	Settled     bool            `json:"settled"`
}

func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:          inv.ID,
		WorkOrderID: inv.WorkOrderID,
		IssuedAt:    inv.IssuedAt,
		DueDate:     inv.DueDate.Format(time.DateOnly),
		TotalAmount: inv.TotalAmount,
		Paid:        inv.Paid,
		PaidAt:      inv.PaidAt,
	}
}

func toPaymentResponse(p *billing.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
	}
}

func toSummaryResponse(s *billing.Summary) summaryResponse {
	return summaryResponse{
		InvoiceID:   s.InvoiceID,
		Total:       s.Total,
		PaidAmount:  s.PaidAmount,
		Outstanding: s.Outstanding,
		Payments:    s.Payments,
		Settled:     s.Settled,
	}
}
