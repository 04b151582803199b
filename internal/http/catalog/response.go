package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/catalog"
)

type supplierResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

type partResponse struct {
	ID          int64           `json:"id"`
	SupplierID  int64           `json:"supplier_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type importResponse struct {
	Created int            `json:"created"`
	Updated int            `json:"updated"`
	Parts   []partResponse `json:"parts"`
}

func toSupplierResponse(s *catalog.Supplier) supplierResponse {
	return supplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		CreatedAt: s.CreatedAt,
	}
}

func toPartResponse(p *catalog.Part) partResponse {
	return partResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPartResponseList(ps []*catalog.Part) []partResponse {
	resp := make([]partResponse, len(ps))
	for i, p := range ps {
		resp[i] = toPartResponse(p)
	}

	return resp
}
