// Package report serves the read-only aggregate views of the shop. Every
// cost is derived from line items with the work order total formula; the
// stored totals are never read.
package report

import "github.com/shopspring/decimal"

type ClientOrders struct {
	ClientID int64  `json:"client_id"`
	Name     string `json:"name"`
	Orders   int    `json:"orders"`
}

// LowStockUse is a work order line that consumes a part running low.
type LowStockUse struct {
	WorkOrderID int64  `json:"work_order_id"`
	PartID      int64  `json:"part_id"`
	SKU         string `json:"sku"`
	PartName    string `json:"part_name"`
	OnHand      int    `json:"on_hand"`
}

type WorkOrderCost struct {
	WorkOrderID int64           `json:"work_order_id"`
	ClientID    int64           `json:"client_id"`
	Status      string          `json:"status"`
	Cost        decimal.Decimal `json:"cost"`
}

type MechanicHours struct {
	MechanicID int64           `json:"mechanic_id"`
	Name       string          `json:"name"`
	Hours      decimal.Decimal `json:"hours"`
}

type PartUsage struct {
	PartID   int64  `json:"part_id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type BilledClient struct {
	ClientID int64           `json:"client_id"`
	Name     string          `json:"name"`
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
}

type LineItem struct {
	ItemID       int64           `json:"item_id"`
	Kind         string          `json:"kind"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Hours        decimal.Decimal `json:"hours"`
	MechanicRate decimal.Decimal `json:"mechanic_rate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type LowStockPart struct {
	PartID     int64  `json:"part_id"`
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	OnHand     int    `json:"on_hand"`
	WorkOrders int    `json:"work_orders"`
}

// MechanicRevenue splits a mechanic's lines into labor (hours × rate) and
// the price × quantity billed on those same lines.
type MechanicRevenue struct {
	MechanicID int64           `json:"mechanic_id"`
	Name       string          `json:"name"`
	Labor      decimal.Decimal `json:"labor"`
	Lines      decimal.Decimal `json:"lines"`
	Total      decimal.Decimal `json:"total"`
}

type TopClient struct {
	ClientID      int64           `json:"client_id"`
	Name          string          `json:"name"`
	Orders        int             `json:"orders"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}
