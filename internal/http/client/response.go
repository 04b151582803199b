package client

import (
	"time"

	"github.com/MrJamesThe3rd/garage/internal/client"
)

type clientResponse struct {
	ID            int64       `json:"id"`
	Kind          client.Kind `json:"kind"`
	Name          string      `json:"name"`
	Email         *string     `json:"email,omitempty"`
	Phone         string      `json:"phone"`
	PersonalTaxID *string     `json:"personal_tax_id,omitempty"`
	BusinessTaxID *string     `json:"business_tax_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type vehicleResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Plate     string    `json:"plate"`
	VIN       *string   `json:"vin,omitempty"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:            c.ID,
		Kind:          c.Kind,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		PersonalTaxID: c.PersonalTaxID,
		BusinessTaxID: c.BusinessTaxID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toResponseList(cs []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}

func toVehicleResponse(v *client.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:        v.ID,
		ClientID:  v.ClientID,
		Plate:     v.Plate,
		VIN:       v.VIN,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		Color:     v.Color,
		CreatedAt: v.CreatedAt,
	}
}

func toVehicleResponseList(vs []*client.Vehicle) []vehicleResponse {
	resp := make([]vehicleResponse, len(vs))
	for i, v := range vs {
		resp[i] = toVehicleResponse(v)
	}

	return resp
}
