package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID        int64
	Name      string
	Contact   string
	CreatedAt time.Time
}

// Part is a stocked component bought from a supplier. Its on-hand quantity
// lives in the inventory ledger.
type Part struct {
	ID          int64
	SupplierID  int64
	SKU         string
	Name        string
	Description string
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceListEntry is one line of a supplier price list.
type PriceListEntry struct {
	SKU         string
	Name        string
	Description string
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
}

type ImportResult struct {
	Created int
	Updated int
	Parts   []*Part
}
