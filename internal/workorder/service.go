package workorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/event"
	"github.com/MrJamesThe3rd/garage/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=workorder
type Repository interface {
	// VehicleOwner returns the client id owning the vehicle.
	VehicleOwner(ctx context.Context, vehicleID int64) (int64, error)
	ClientExists(ctx context.Context, clientID int64) (bool, error)

	CreateWorkOrder(ctx context.Context, wo *WorkOrder) error
	GetWorkOrder(ctx context.Context, id int64) (*WorkOrder, error)
	ListWorkOrders(ctx context.Context, filter ListFilter) ([]*WorkOrder, error)
	ListItems(ctx context.Context, workOrderID int64) ([]*Item, error)
	ListStatusLog(ctx context.Context, workOrderID int64) ([]*StatusLogEntry, error)
	DeleteWorkOrder(ctx context.Context, id int64) error

	Begin(ctx context.Context) (Tx, error)
}

// Tx is a unit of work scoped to a single work order. LockWorkOrder must be
// called first; it holds the row until Commit or Rollback.
type Tx interface {
	LockWorkOrder(ctx context.Context, id int64) (*WorkOrder, error)
	MechanicExists(ctx context.Context, id int64) (bool, error)
	// PartQuantity returns the on-hand quantity of a part, holding a share
	// lock on its inventory record.
	PartQuantity(ctx context.Context, partID int64) (int, error)

	CreateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, workOrderID, itemID int64) error
	ListItems(ctx context.Context, workOrderID int64) ([]*Item, error)
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error

	UpdateStatus(ctx context.Context, id int64, status Status) error
	AppendStatusLog(ctx context.Context, entry *StatusLogEntry) error

	Commit() error
	Rollback() error
}

type Service struct {
	repo      Repository
	publisher event.Publisher
	metrics   *metrics.Metrics

	invalidator event.Invalidator
}

type Option func(*Service)

func WithPublisher(p event.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithInvalidator registers inv to be told about every committed write.
func WithInvalidator(inv event.Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, publisher: event.Nop{}}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	ClientID       int64           `json:"client_id" validate:"required"`
	VehicleID      int64           `json:"vehicle_id" validate:"required"`
	ScheduledDate  *time.Time      `json:"scheduled_date"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	Notes          string          `json:"notes"`
}

type ItemParams struct {
	Kind        ItemKind        `json:"kind" validate:"required,oneof=service part"`
	Description string          `json:"description"`
	PartID      *int64          `json:"part_id"`
	MechanicID  *int64          `json:"mechanic_id"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Hours       decimal.Decimal `json:"hours"`
}

type ListFilter struct {
	ClientID  *int64
	VehicleID *int64
	Status    *Status
}

// Create opens a work order. The vehicle must belong to the client.
func (s *Service) Create(ctx context.Context, params CreateParams) (*WorkOrder, error) {
	if err := apperr.Struct("work_order", params); err != nil {
		return nil, err
	}

	if params.EstimatedHours.IsNegative() {
		return nil, apperr.Invalid("work_order", "estimated_hours", "must not be negative")
	}

	if reason := apperr.Hours.Check(params.EstimatedHours); reason != "" {
		return nil, apperr.Invalid("work_order", "estimated_hours", reason)
	}

	exists, err := s.repo.ClientExists(ctx, params.ClientID)
	if err != nil {
		return nil, fmt.Errorf("checking client: %w", err)
	}

	if !exists {
		return nil, apperr.Missing("work_order", "client_id", params.ClientID)
	}

	owner, err := s.repo.VehicleOwner(ctx, params.VehicleID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Missing("work_order", "vehicle_id", params.VehicleID)
		}

		return nil, fmt.Errorf("checking vehicle: %w", err)
	}

	if owner != params.ClientID {
		return nil, &apperr.ReferenceError{
			Entity: "work_order",
			Field:  "vehicle_id",
			ID:     params.VehicleID,
			Reason: fmt.Sprintf("belongs to client %d, not %d", owner, params.ClientID),
		}
	}

	wo := &WorkOrder{
		ClientID:       params.ClientID,
		VehicleID:      params.VehicleID,
		ScheduledDate:  params.ScheduledDate,
		Status:         StatusOpen,
		EstimatedHours: params.EstimatedHours,
		Total:          decimal.Zero,
		Notes:          strings.TrimSpace(params.Notes),
	}
	if err := s.repo.CreateWorkOrder(ctx, wo); err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return wo, nil
}

// Get returns the work order with its total recomputed from current items.
func (s *Service) Get(ctx context.Context, id int64) (*WorkOrder, error) {
	wo, err := s.repo.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	wo.Total = Total(items)

	return wo, nil
}

func (s *Service) Items(ctx context.Context, id int64) ([]*Item, error) {
	if _, err := s.repo.GetWorkOrder(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.ListItems(ctx, id)
}

// List returns work orders as stored. Their Total is the persisted value.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*WorkOrder, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.Invalid("work_order", "status", "unknown status")
	}

	return s.repo.ListWorkOrders(ctx, filter)
}

func (s *Service) StatusLog(ctx context.Context, id int64) ([]*StatusLogEntry, error) {
	if _, err := s.repo.GetWorkOrder(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.ListStatusLog(ctx, id)
}

// Delete removes the work order together with its items, invoice, payments
// and status log.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteWorkOrder(ctx, id); err != nil {
		return err
	}

	event.Invalidate(ctx, s.invalidator)

	return nil
}

// AddItem appends a line item and refreshes the stored total in the same
// transaction. Part items may not ask for more units than are on hand.
func (s *Service) AddItem(ctx context.Context, workOrderID int64, params ItemParams) (*Item, error) {
	params.Description = strings.TrimSpace(params.Description)
	if err := validateItem(params); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add item: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.LockWorkOrder(ctx, workOrderID); err != nil {
		return nil, err
	}

	if params.MechanicID != nil {
		ok, err := tx.MechanicExists(ctx, *params.MechanicID)
		if err != nil {
			return nil, fmt.Errorf("checking mechanic: %w", err)
		}

		if !ok {
			return nil, apperr.Missing("work_order_item", "mechanic_id", *params.MechanicID)
		}
	}

	if params.PartID != nil {
		onHand, err := tx.PartQuantity(ctx, *params.PartID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Missing("work_order_item", "part_id", *params.PartID)
			}

			return nil, fmt.Errorf("checking stock: %w", err)
		}

		if params.Kind == KindPart && params.Quantity > onHand {
			return nil, apperr.Invalid("work_order_item", "quantity",
				fmt.Sprintf("exceeds on-hand stock of %d", onHand))
		}
	}

	item := &Item{
		WorkOrderID: workOrderID,
		Kind:        params.Kind,
		Description: params.Description,
		PartID:      params.PartID,
		MechanicID:  params.MechanicID,
		Quantity:    params.Quantity,
		UnitPrice:   params.UnitPrice,
		Hours:       params.Hours,
	}
	if err := tx.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if _, err := refreshTotal(ctx, tx, workOrderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add item: %w", err)
	}

	event.Invalidate(ctx, s.invalidator)

	return item, nil
}

func (s *Service) RemoveItem(ctx context.Context, workOrderID, itemID int64) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin remove item: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.LockWorkOrder(ctx, workOrderID); err != nil {
		return err
	}

	if err := tx.DeleteItem(ctx, workOrderID, itemID); err != nil {
		return err
	}

	if _, err := refreshTotal(ctx, tx, workOrderID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit remove item: %w", err)
	}

	event.Invalidate(ctx, s.invalidator)

	return nil
}

// RecomputeTotal derives the total from the current items, persists it and
// returns it. Calling it again without changes yields the same value.
func (s *Service) RecomputeTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin recompute: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.LockWorkOrder(ctx, id); err != nil {
		return decimal.Zero, err
	}

	total, err := refreshTotal(ctx, tx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("commit recompute: %w", err)
	}

	return total, nil
}

// TransitionStatus moves the work order to status to and appends one status
// log entry. Concurrent calls on the same work order serialize on the row
// lock, so each commits its own entry with the status it actually replaced.
func (s *Service) TransitionStatus(ctx context.Context, id int64, to Status) (*StatusLogEntry, error) {
	if !to.Valid() {
		return nil, apperr.Invalid("work_order", "status", "unknown status "+string(to))
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transition: %w", err)
	}
	defer tx.Rollback()

	wo, err := tx.LockWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(wo.Status, to) {
		return nil, apperr.Invalid("work_order", "status",
			fmt.Sprintf("cannot move from %s to %s", wo.Status, to))
	}

	if err := tx.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}

	entry := &StatusLogEntry{WorkOrderID: id, OldStatus: wo.Status, NewStatus: to}
	if err := tx.AppendStatusLog(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}

	event.Invalidate(ctx, s.invalidator)

	s.metrics.StatusTransition(string(entry.OldStatus), string(entry.NewStatus))

	ev := event.StatusChanged{
		WorkOrderID: id,
		From:        string(entry.OldStatus),
		To:          string(entry.NewStatus),
		ChangedAt:   entry.ChangedAt,
	}
	if err := s.publisher.PublishStatusChanged(ctx, ev); err != nil {
		slog.Warn("publishing status change", "work_order_id", id, "error", err)
	}

	return entry, nil
}

func refreshTotal(ctx context.Context, tx Tx, id int64) (decimal.Decimal, error) {
	items, err := tx.ListItems(ctx, id)
	if err != nil {
		return decimal.Zero, fmt.Errorf("listing items: %w", err)
	}

	total := Total(items)
	if err := tx.UpdateTotal(ctx, id, total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func validateItem(params ItemParams) error {
	if err := apperr.Struct("work_order_item", params); err != nil {
		return err
	}

	violations := map[string]string{}

	switch params.Kind {
	case KindService:
		if params.MechanicID == nil {
			violations["mechanic_id"] = "required for service items"
		}
	case KindPart:
		if params.PartID == nil {
			violations["part_id"] = "required for part items"
		}
	}

	if params.UnitPrice.IsNegative() {
		violations["unit_price"] = "must not be negative"
	} else if reason := apperr.Money.Check(params.UnitPrice); reason != "" {
		violations["unit_price"] = reason
	}

	if params.Hours.IsNegative() {
		violations["hours"] = "must not be negative"
	} else if reason := apperr.Hours.Check(params.Hours); reason != "" {
		violations["hours"] = reason
	}

	if reason := apperr.CheckInt(params.Quantity); reason != "" {
		violations["quantity"] = reason
	}

	if len(violations) > 0 {
		return &apperr.ValidationError{Entity: "work_order_item", Violations: violations}
	}

	return nil
}
