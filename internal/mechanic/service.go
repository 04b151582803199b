package mechanic

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/event"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=mechanic
type Repository interface {
	CreateMechanic(ctx context.Context, mech *Mechanic) error
	GetMechanic(ctx context.Context, id int64) (*Mechanic, error)
	ListMechanics(ctx context.Context) ([]*Mechanic, error)
	UpdateMechanic(ctx context.Context, mech *Mechanic) error
	DeleteMechanic(ctx context.Context, id int64) error
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

type Params struct {
	Name       string          `json:"name" validate:"required"`
	HireDate   time.Time       `json:"hire_date"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

func (s *Service) Create(ctx context.Context, params Params) (*Mechanic, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validate(params); err != nil {
		return nil, err
	}

	hireDate := params.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	m := &Mechanic{
		Name:       params.Name,
		HireDate:   hireDate,
		HourlyRate: params.HourlyRate,
	}
	if err := s.repo.CreateMechanic(ctx, m); err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return m, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Mechanic, error) {
	return s.repo.GetMechanic(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Mechanic, error) {
	return s.repo.ListMechanics(ctx)
}

// Update replaces name, hire date and rate. A new rate changes the derived
// total of every work order carrying this mechanic's service items the next
// time it is recomputed.
func (s *Service) Update(ctx context.Context, id int64, params Params) (*Mechanic, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := validate(params); err != nil {
		return nil, err
	}

	m, err := s.repo.GetMechanic(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Name = params.Name
	m.HourlyRate = params.HourlyRate

	if !params.HireDate.IsZero() {
		m.HireDate = params.HireDate
	}

	if err := s.repo.UpdateMechanic(ctx, m); err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteMechanic(ctx, id); err != nil {
		return err
	}

	event.Invalidate(ctx, s.invalidator)

	return nil
}

func validate(params Params) error {
	if err := apperr.Struct("mechanic", params); err != nil {
		return err
	}

	if params.HourlyRate.IsNegative() {
		return apperr.Invalid("mechanic", "hourly_rate", "must not be negative")
	}

	if reason := apperr.Money.Check(params.HourlyRate); reason != "" {
		return apperr.Invalid("mechanic", "hourly_rate", reason)
	}

	return nil
}
