package apperr

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Numeric is a NUMERIC(Precision, Scale) column.
type Numeric struct {
	Precision int32
	Scale     int32
}

var (
	// Money holds prices and hourly rates.
	Money = Numeric{Precision: 10, Scale: 2}
	// Hours holds booked and estimated hours.
	Hours = Numeric{Precision: 6, Scale: 2}
	// Amount holds totals and payments.
	Amount = Numeric{Precision: 14, Scale: 4}
)

// Check returns why d cannot be stored in the column as is, or "" when it
// fits without rounding.
func (n Numeric) Check(d decimal.Decimal) string {
	if !d.Equal(d.Truncate(n.Scale)) {
		return fmt.Sprintf("must have at most %d decimal places", n.Scale)
	}

	if limit := decimal.New(1, n.Precision-n.Scale); d.Abs().GreaterThanOrEqual(limit) {
		return "must be less than " + limit.String()
	}

	return ""
}

// CheckInt returns why v does not fit an INT column, or "" when it does.
func CheckInt(v int) string {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return fmt.Sprintf("must be between %d and %d", math.MinInt32, math.MaxInt32)
	}

	return ""
}
