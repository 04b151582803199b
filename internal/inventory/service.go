package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/event"
)

// ErrInsufficientStock is returned by the repository when an adjustment
// would drive the quantity below zero. The stored quantity is unchanged.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrQuantityOverflow is returned when an adjustment would push the quantity
// past what the inventory column holds.
var ErrQuantityOverflow = errors.New("quantity overflow")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	Get(ctx context.Context, partID int64) (*Record, error)
	// Adjust applies delta under a row lock and returns the new quantity.
	Adjust(ctx context.Context, partID int64, delta int) (int, error)
	ListBelow(ctx context.Context, threshold int) ([]int64, error)
	SetLocation(ctx context.Context, partID int64, location string) (*Record, error)
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

func (s *Service) Get(ctx context.Context, partID int64) (*Record, error) {
	return s.repo.Get(ctx, partID)
}

func (s *Service) GetQuantity(ctx context.Context, partID int64) (int, error) {
	rec, err := s.repo.Get(ctx, partID)
	if err != nil {
		return 0, err
	}

	return rec.Quantity, nil
}

// Adjust adds delta (which may be negative) to the part's quantity.
func (s *Service) Adjust(ctx context.Context, partID int64, delta int) (int, error) {
	if reason := apperr.CheckInt(delta); reason != "" {
		return 0, apperr.Invalid("inventory", "delta", reason)
	}

	qty, err := s.repo.Adjust(ctx, partID, delta)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return 0, apperr.Invalid("inventory", "delta", "would make quantity negative")
		}

		if errors.Is(err, ErrQuantityOverflow) {
			return 0, apperr.Invalid("inventory", "delta", "would exceed the largest storable quantity")
		}

		return 0, err
	}

	event.Invalidate(ctx, s.invalidator)

	return qty, nil
}

// ListBelowThreshold returns the ids of parts whose quantity is strictly
// below threshold, ascending.
func (s *Service) ListBelowThreshold(ctx context.Context, threshold int) ([]int64, error) {
	if threshold < 0 {
		return nil, apperr.Invalid("inventory", "threshold", "must not be negative")
	}

	return s.repo.ListBelow(ctx, threshold)
}

func (s *Service) SetLocation(ctx context.Context, partID int64, location string) (*Record, error) {
	return s.repo.SetLocation(ctx, partID, strings.TrimSpace(location))
}
