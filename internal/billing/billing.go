package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodPIX      Method = "pix"
	MethodTransfer Method = "transfer"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodPIX, MethodTransfer:
		return true
	}

	return false
}

// Invoice snapshots a work order total at issue time.
type Invoice struct {
	ID          int64
	WorkOrderID int64
	IssuedAt    time.Time
	DueDate     time.Time
	TotalAmount decimal.Decimal
	Paid        bool
	PaidAt      *time.Time
}

type Payment struct {
	ID        int64
	InvoiceID int64
	Amount    decimal.Decimal
	Method    Method
	// Reference is the receipt number handed to the client.
	Reference uuid.UUID
	PaidAt    time.Time
}

// Summary compares an invoice with the payments recorded against it.
// Payments may fall short of or exceed the total.
type Summary struct {
	InvoiceID   int64
	Total       decimal.Decimal
	PaidAmount  decimal.Decimal
	Outstanding decimal.Decimal
	Payments    int
	Settled     bool
}
