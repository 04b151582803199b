package mechanic

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mechanic performs service work; HourlyRate prices the hours booked on
// service items.
type Mechanic struct {
	ID         int64
	Name       string
	HireDate   time.Time
	HourlyRate decimal.Decimal
	CreatedAt  time.Time
}
