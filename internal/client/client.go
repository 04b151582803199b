package client

import (
	"time"
)

// Kind distinguishes private individuals from companies. It decides which
// tax id a client carries.
type Kind string

const (
	KindIndividual Kind = "individual"
	KindBusiness   Kind = "business"
)

// Client is a customer of the shop. Exactly one of PersonalTaxID and
// BusinessTaxID is set, matching Kind.
type Client struct {
	ID            int64
	Kind          Kind
	Name          string
	Email         *string
	Phone         string
	PersonalTaxID *string
	BusinessTaxID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Vehicle belongs to exactly one client and is removed with it.
type Vehicle struct {
	ID        int64
	ClientID  int64
	Plate     string
	VIN       *string
	Brand     string
	Model     string
	Year      int
	Color     string
	CreatedAt time.Time
}
