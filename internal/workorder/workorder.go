package workorder

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen         Status = "open"
	StatusInProgress   Status = "in_progress"
	StatusWaitingParts Status = "waiting_parts"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

var Statuses = []Status{StatusOpen, StatusInProgress, StatusWaitingParts, StatusCompleted, StatusCancelled}

// transitions lists, per status, the statuses it may move to. Every status
// currently reaches every other one, itself included; tightening the
// lifecycle means editing this table only.
var transitions = map[Status][]Status{
	StatusOpen:         Statuses,
	StatusInProgress:   Statuses,
	StatusWaitingParts: Statuses,
	StatusCompleted:    Statuses,
	StatusCancelled:    Statuses,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether a work order in status from may move to to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

type ItemKind string

const (
	KindService ItemKind = "service"
	KindPart    ItemKind = "part"
)

type WorkOrder struct {
	ID             int64
	ClientID       int64
	VehicleID      int64
	CreatedAt      time.Time
	ScheduledDate  *time.Time
	Status         Status
	EstimatedHours decimal.Decimal
	// Total is the last persisted result of the total formula. Reads that
	// go through the Service always carry a freshly recomputed value.
	Total decimal.Decimal
	Notes string
}

type Item struct {
	ID          int64
	WorkOrderID int64
	Kind        ItemKind
	Description string
	PartID      *int64
	MechanicID  *int64
	Quantity    int
	UnitPrice   decimal.Decimal
	Hours       decimal.Decimal
	// MechanicRate is the current hourly rate of the linked mechanic, zero
	// when the item has none.
	MechanicRate decimal.Decimal
}

// Subtotal is unit price × quantity + hours × mechanic rate.
func (i *Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity))).Add(i.Hours.Mul(i.MechanicRate))
}

// Total sums the subtotals of items.
func Total(items []*Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}

	return total
}

type StatusLogEntry struct {
	ID          int64
	WorkOrderID int64
	OldStatus   Status
	NewStatus   Status
	ChangedAt   time.Time
}
