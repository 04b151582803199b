package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/event"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateSupplier(ctx context.Context, s *Supplier) error
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	// CreatePart inserts the part and its inventory record atomically.
	CreatePart(ctx context.Context, p *Part, quantity int, location string) error
	GetPart(ctx context.Context, id int64) (*Part, error)
	ListParts(ctx context.Context, filter ListFilter) ([]*Part, error)
	UpdatePrices(ctx context.Context, id int64, cost, sale decimal.Decimal) (*Part, error)
	DeletePart(ctx context.Context, id int64) error

	UpsertPriceList(ctx context.Context, supplierID int64, entries []PriceListEntry) (*ImportResult, error)
}

type Service struct {
	repo        Repository
	invalidator event.Invalidator
}

type Option func(*Service)

// WithInvalidator registers inv to be told about every committed write.
func WithInvalidator(inv event.Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type SupplierParams struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
}

type PartParams struct {
	SupplierID      int64           `json:"supplier_id" validate:"required"`
	SKU             string          `json:"sku" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Description     string          `json:"description"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	InitialQuantity int             `json:"initial_quantity" validate:"gte=0"`
	Location        string          `json:"location"`
}

type ListFilter struct {
	SupplierID *int64
}

func (s *Service) CreateSupplier(ctx context.Context, params SupplierParams) (*Supplier, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := apperr.Struct("supplier", params); err != nil {
		return nil, err
	}

	sup := &Supplier{Name: params.Name, Contact: strings.TrimSpace(params.Contact)}
	if err := s.repo.CreateSupplier(ctx, sup); err != nil {
		return nil, err
	}

	return sup, nil
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

// DeleteSupplier fails with a ConflictError while any part still references
// the supplier.
func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.repo.DeleteSupplier(ctx, id)
}

func (s *Service) CreatePart(ctx context.Context, params PartParams) (*Part, error) {
	params.SKU = strings.ToUpper(strings.TrimSpace(params.SKU))
	params.Name = strings.TrimSpace(params.Name)

	if err := apperr.Struct("part", params); err != nil {
		return nil, err
	}

	if err := validatePrices(params.CostPrice, params.SalePrice); err != nil {
		return nil, err
	}

	if reason := apperr.CheckInt(params.InitialQuantity); reason != "" {
		return nil, apperr.Invalid("part", "initial_quantity", reason)
	}

	if err := s.requireSupplier(ctx, "part", params.SupplierID); err != nil {
		return nil, err
	}

	p := &Part{
		SupplierID:  params.SupplierID,
		SKU:         params.SKU,
		Name:        params.Name,
		Description: params.Description,
		CostPrice:   params.CostPrice,
		SalePrice:   params.SalePrice,
	}
	if err := s.repo.CreatePart(ctx, p, params.InitialQuantity, params.Location); err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return p, nil
}

func (s *Service) GetPart(ctx context.Context, id int64) (*Part, error) {
	return s.repo.GetPart(ctx, id)
}

func (s *Service) ListParts(ctx context.Context, filter ListFilter) ([]*Part, error) {
	return s.repo.ListParts(ctx, filter)
}

func (s *Service) UpdatePrices(ctx context.Context, id int64, cost, sale decimal.Decimal) (*Part, error) {
	if err := validatePrices(cost, sale); err != nil {
		return nil, err
	}

	p, err := s.repo.UpdatePrices(ctx, id, cost, sale)
	if err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return p, nil
}

// DeletePart removes the part and its inventory record. Work order items
// that used it keep their price but lose the link.
func (s *Service) DeletePart(ctx context.Context, id int64) error {
	if err := s.repo.DeletePart(ctx, id); err != nil {
		return err
	}

	event.Invalidate(ctx, s.invalidator)

	return nil
}

// ImportPriceList creates or reprices the supplier's parts by SKU. New parts
// start with zero stock. A SKU owned by another supplier is a conflict and
// aborts the whole import.
func (s *Service) ImportPriceList(ctx context.Context, supplierID int64, entries []PriceListEntry) (*ImportResult, error) {
	if len(entries) == 0 {
		return &ImportResult{}, nil
	}

	seen := make(map[string]int, len(entries))

	for i := range entries {
		e := &entries[i]
		e.SKU = strings.ToUpper(strings.TrimSpace(e.SKU))
		e.Name = strings.TrimSpace(e.Name)

		line := fmt.Sprintf("entries[%d]", i)

		if e.SKU == "" || e.Name == "" {
			return nil, apperr.Invalid("price_list", line, "sku and name are required")
		}

		if e.CostPrice.IsNegative() || e.SalePrice.IsNegative() {
			return nil, apperr.Invalid("price_list", line, "prices must not be negative")
		}

		if reason := priceReason(e.CostPrice, e.SalePrice); reason != "" {
			return nil, apperr.Invalid("price_list", line, "prices "+reason)
		}

		if prev, dup := seen[e.SKU]; dup {
			return nil, apperr.Invalid("price_list", line, fmt.Sprintf("sku %s repeats entries[%d]", e.SKU, prev))
		}

		seen[e.SKU] = i
	}

	if err := s.requireSupplier(ctx, "price_list", supplierID); err != nil {
		return nil, err
	}

	res, err := s.repo.UpsertPriceList(ctx, supplierID, entries)
	if err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return res, nil
}

func (s *Service) requireSupplier(ctx context.Context, entity string, id int64) error {
	if _, err := s.repo.GetSupplier(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Missing(entity, "supplier_id", id)
		}

		return err
	}

	return nil
}

func validatePrices(cost, sale decimal.Decimal) error {
	violations := map[string]string{}

	for field, d := range map[string]decimal.Decimal{"cost_price": cost, "sale_price": sale} {
		if d.IsNegative() {
			violations[field] = "must not be negative"
		} else if reason := apperr.Money.Check(d); reason != "" {
			violations[field] = reason
		}
	}

	if len(violations) > 0 {
		return &apperr.ValidationError{Entity: "part", Violations: violations}
	}

	return nil
}

func priceReason(cost, sale decimal.Decimal) string {
	if reason := apperr.Money.Check(cost); reason != "" {
		return reason
	}

	return apperr.Money.Check(sale)
}
