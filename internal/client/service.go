package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/event"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id int64) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)

	CreateVehicle(ctx context.Context, v *Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*Vehicle, error)
	ListVehicles(ctx context.Context, clientID int64) ([]*Vehicle, error)
	UpdateVehicle(ctx context.Context, v *Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
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
	Kind          Kind    `json:"kind" validate:"required,oneof=individual business"`
	Name          string  `json:"name" validate:"required"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone"`
	PersonalTaxID *string `json:"personal_tax_id"`
	BusinessTaxID *string `json:"business_tax_id"`
}

type VehicleParams struct {
	Plate string  `json:"plate" validate:"required"`
	VIN   *string `json:"vin"`
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Year  int     `json:"year" validate:"gte=1886"`
	Color string  `json:"color"`
}

func (s *Service) Create(ctx context.Context, params Params) (*Client, error) {
	params = normalize(params)
	if err := validateClient(params); err != nil {
		return nil, err
	}

	if err := s.checkEmail(ctx, params.Email, 0); err != nil {
		return nil, err
	}

	c := &Client{
		Kind:          params.Kind,
		Name:          params.Name,
		Email:         params.Email,
		Phone:         params.Phone,
		PersonalTaxID: params.PersonalTaxID,
		BusinessTaxID: params.BusinessTaxID,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Client, error) {
	params = normalize(params)
	if err := validateClient(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkEmail(ctx, params.Email, id); err != nil {
		return nil, err
	}

	c.Kind = params.Kind
	c.Name = params.Name
	c.Email = params.Email
	c.Phone = params.Phone
	c.PersonalTaxID = params.PersonalTaxID
	c.BusinessTaxID = params.BusinessTaxID

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	event.Invalidate(ctx, s.invalidator)

	return c, nil
}

// Delete removes the client together with its vehicles, appointments and
// work orders (and everything those own).
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return err
	}

	event.Invalidate(ctx, s.invalidator)

	return nil
}

func (s *Service) AddVehicle(ctx context.Context, clientID int64, params VehicleParams) (*Vehicle, error) {
	params = normalizeVehicle(params)
	if err := validateVehicle(params); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Missing("vehicle", "client_id", clientID)
		}

		return nil, err
	}

	v := &Vehicle{
		ClientID: clientID,
		Plate:    params.Plate,
		VIN:      params.VIN,
		Brand:    params.Brand,
		Model:    params.Model,
		Year:     params.Year,
		Color:    params.Color,
	}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*Vehicle, error) {
	return s.repo.GetVehicle(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context, clientID int64) ([]*Vehicle, error) {
	if _, err := s.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	return s.repo.ListVehicles(ctx, clientID)
}

func (s *Service) UpdateVehicle(ctx context.Context, id int64, params VehicleParams) (*Vehicle, error) {
	params = normalizeVehicle(params)
	if err := validateVehicle(params); err != nil {
		return nil, err
	}

	v, err := s.repo.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	v.Plate = params.Plate
	v.VIN = params.VIN
	v.Brand = params.Brand
	v.Model = params.Model
	v.Year = params.Year
	v.Color = params.Color

	if err := s.repo.UpdateVehicle(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	event.Invalidate(ctx, s.invalidator)

	return nil
}

func (s *Service) checkEmail(ctx context.Context, email *string, exceptID int64) error {
	if email == nil {
		return nil
	}

	taken, err := s.repo.EmailTaken(ctx, *email, exceptID)
	if err != nil {
		return err
	}

	if taken {
		return &apperr.ConflictError{Entity: "client", Field: "email", Value: *email}
	}

	return nil
}

// ValidateTaxIDs enforces that an individual carries only a personal tax id
// and a business only a business tax id.
func ValidateTaxIDs(kind Kind, personal, business *string) error {
	violations := map[string]string{}

	switch kind {
	case KindIndividual:
		if personal == nil {
			violations["personal_tax_id"] = "required for individual clients"
		}

		if business != nil {
			violations["business_tax_id"] = "must be empty for individual clients"
		}
	case KindBusiness:
		if business == nil {
			violations["business_tax_id"] = "required for business clients"
		}

		if personal != nil {
			violations["personal_tax_id"] = "must be empty for business clients"
		}
	default:
		violations["kind"] = "must be one of individual business"
	}

	if len(violations) > 0 {
		return &apperr.ValidationError{Entity: "client", Violations: violations}
	}

	return nil
}

func validateClient(params Params) error {
	if err := apperr.Struct("client", params); err != nil {
		return err
	}

	return ValidateTaxIDs(params.Kind, params.PersonalTaxID, params.BusinessTaxID)
}

func validateVehicle(params VehicleParams) error {
	if err := apperr.Struct("vehicle", params); err != nil {
		return err
	}

	if maxYear := time.Now().Year() + 1; params.Year > maxYear {
		return apperr.Invalid("vehicle", "year", "must not be after next year")
	}

	return nil
}

func normalize(p Params) Params {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Email = trimmed(p.Email)

	if p.Email != nil {
		lower := strings.ToLower(*p.Email)
		p.Email = &lower
	}

	p.PersonalTaxID = trimmed(p.PersonalTaxID)
	p.BusinessTaxID = trimmed(p.BusinessTaxID)

	return p
}

func normalizeVehicle(p VehicleParams) VehicleParams {
	p.Plate = strings.ToUpper(strings.TrimSpace(p.Plate))
	p.VIN = trimmed(p.VIN)

	if p.VIN != nil {
		upper := strings.ToUpper(*p.VIN)
		p.VIN = &upper
	}

	return p
}

// trimmed treats blank optional strings as absent.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}

	return &t
}
