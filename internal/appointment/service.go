package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=appointment
type Repository interface {
	VehicleOwner(ctx context.Context, vehicleID int64) (int64, error)
	CreateAppointment(ctx context.Context, a *Appointment) error
	GetAppointment(ctx context.Context, id int64) (*Appointment, error)
	ListForClient(ctx context.Context, clientID int64) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ScheduleParams struct {
	ClientID    int64     `json:"client_id" validate:"required"`
	VehicleID   int64     `json:"vehicle_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Reason      string    `json:"reason"`
}

// Schedule books a visit for one of the client's vehicles.
func (s *Service) Schedule(ctx context.Context, params ScheduleParams) (*Appointment, error) {
	if err := apperr.Struct("appointment", params); err != nil {
		return nil, err
	}

	owner, err := s.repo.VehicleOwner(ctx, params.VehicleID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Missing("appointment", "vehicle_id", params.VehicleID)
		}

		return nil, fmt.Errorf("checking vehicle: %w", err)
	}

	if owner != params.ClientID {
		return nil, &apperr.ReferenceError{
			Entity: "appointment",
			Field:  "vehicle_id",
			ID:     params.VehicleID,
			Reason: fmt.Sprintf("belongs to client %d, not %d", owner, params.ClientID),
		}
	}

	a := &Appointment{
		ClientID:    params.ClientID,
		VehicleID:   params.VehicleID,
		ScheduledAt: params.ScheduledAt.UTC(),
		Reason:      strings.TrimSpace(params.Reason),
		Status:      StatusScheduled,
	}
	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) SetStatus(ctx context.Context, id int64, status Status) (*Appointment, error) {
	if !status.Valid() {
		return nil, apperr.Invalid("appointment", "status", "must be one of scheduled attended no_show cancelled")
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *Service) ListForClient(ctx context.Context, clientID int64) ([]*Appointment, error) {
	return s.repo.ListForClient(ctx, clientID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAppointment(ctx, id)
}
