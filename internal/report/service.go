package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	OrdersPerClient(ctx context.Context) ([]ClientOrders, error)
	LowStockWorkOrders(ctx context.Context, threshold int) ([]LowStockUse, error)
	WorkOrderCosts(ctx context.Context) ([]WorkOrderCost, error)
	MechanicHours(ctx context.Context) ([]MechanicHours, error)
	PartsUsage(ctx context.Context) ([]PartUsage, error)
	BilledClients(ctx context.Context, threshold decimal.Decimal) ([]BilledClient, error)
	WorkOrderBreakdown(ctx context.Context, workOrderID int64) ([]LineItem, error)
	LowStockParts(ctx context.Context, threshold int) ([]LowStockPart, error)
	MechanicRevenue(ctx context.Context) ([]MechanicRevenue, error)
	TopClients(ctx context.Context, n int) ([]TopClient, error)
}

// Cache stores encoded report results. Get reports whether key was found.
// Generation names the current set of entries; Invalidate advances it so
// every entry written before becomes unreachable.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Generation(ctx context.Context) (int64, error)
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo    Repository
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

type Option func(*Service)

// WithCache enables result caching for ttl. A zero ttl leaves caching off.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if c != nil && ttl > 0 {
			s.cache = c
			s.ttl = ttl
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Invalidate drops every cached report. Writers call it after commit.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidating report cache: %w", err)
	}

	return nil
}

// cached serves name/key from the cache when possible. Cache failures fall
// through to load.
func cached[T any](ctx context.Context, s *Service, name, key string, load func() (T, error)) (T, error) {
	if s.cache == nil {
		return load()
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		slog.Warn("reading report cache generation", "error", err)
		return load()
	}

	fullKey := fmt.Sprintf("report:%d:%s", gen, name)
	if key != "" {
		fullKey += ":" + key
	}

	var out T

	hit, err := s.cache.Get(ctx, fullKey, &out)
	if err != nil {
		slog.Warn("reading report cache", "key", fullKey, "error", err)
	}

	s.metrics.ReportCache(name, hit && err == nil)

	if hit && err == nil {
		return out, nil
	}

	out, err = load()
	if err != nil {
		return out, err
	}

	if err := s.cache.Set(ctx, fullKey, out, s.ttl); err != nil {
		slog.Warn("writing report cache", "key", fullKey, "error", err)
	}

	return out, nil
}

// OrdersPerClient counts work orders per client, clients without orders
// included, most orders first and ties by client id.
func (s *Service) OrdersPerClient(ctx context.Context) ([]ClientOrders, error) {
	return cached(ctx, s, "orders_per_client", "", func() ([]ClientOrders, error) {
		return s.repo.OrdersPerClient(ctx)
	})
}

// LowStockWorkOrders lists work order lines using a part whose on-hand
// quantity is below threshold.
func (s *Service) LowStockWorkOrders(ctx context.Context, threshold int) ([]LowStockUse, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}

	return cached(ctx, s, "low_stock_work_orders", fmt.Sprint(threshold), func() ([]LowStockUse, error) {
		return s.repo.LowStockWorkOrders(ctx, threshold)
	})
}

func (s *Service) WorkOrderCosts(ctx context.Context) ([]WorkOrderCost, error) {
	return cached(ctx, s, "work_order_costs", "", func() ([]WorkOrderCost, error) {
		return s.repo.WorkOrderCosts(ctx)
	})
}

// MechanicHours sums service hours per mechanic, omitting mechanics with
// none.
func (s *Service) MechanicHours(ctx context.Context) ([]MechanicHours, error) {
	return cached(ctx, s, "mechanic_hours", "", func() ([]MechanicHours, error) {
		return s.repo.MechanicHours(ctx)
	})
}

func (s *Service) PartsUsage(ctx context.Context) ([]PartUsage, error) {
	return cached(ctx, s, "parts_usage", "", func() ([]PartUsage, error) {
		return s.repo.PartsUsage(ctx)
	})
}

// BilledClients returns clients invoiced strictly more than threshold, with
// what they have paid so far.
func (s *Service) BilledClients(ctx context.Context, threshold decimal.Decimal) ([]BilledClient, error) {
	if threshold.IsNegative() {
		return nil, apperr.Invalid("report", "threshold", "must not be negative")
	}

	return cached(ctx, s, "billed_clients", threshold.String(), func() ([]BilledClient, error) {
		return s.repo.BilledClients(ctx, threshold)
	})
}

// WorkOrderBreakdown lists the lines of one work order, largest subtotal
// first. It is never cached.
func (s *Service) WorkOrderBreakdown(ctx context.Context, workOrderID int64) ([]LineItem, error) {
	return s.repo.WorkOrderBreakdown(ctx, workOrderID)
}

func (s *Service) LowStockParts(ctx context.Context, threshold int) ([]LowStockPart, error) {
	if err := checkThreshold(threshold); err != nil {
		return nil, err
	}

	return cached(ctx, s, "low_stock_parts", fmt.Sprint(threshold), func() ([]LowStockPart, error) {
		return s.repo.LowStockParts(ctx, threshold)
	})
}

func (s *Service) MechanicRevenue(ctx context.Context) ([]MechanicRevenue, error) {
	return cached(ctx, s, "mechanic_revenue", "", func() ([]MechanicRevenue, error) {
		return s.repo.MechanicRevenue(ctx)
	})
}

// TopClients ranks clients by order count, then by average order value.
func (s *Service) TopClients(ctx context.Context, n int) ([]TopClient, error) {
	if n <= 0 {
		return nil, apperr.Invalid("report", "n", "must be greater than 0")
	}

	return cached(ctx, s, "top_clients", fmt.Sprint(n), func() ([]TopClient, error) {
		return s.repo.TopClients(ctx, n)
	})
}

func checkThreshold(threshold int) error {
	if threshold < 0 {
		return apperr.Invalid("report", "threshold", "must not be negative")
	}

	return nil
}
