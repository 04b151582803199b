package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/database/dbtest"
	"github.com/MrJamesThe3rd/garage/internal/mechanic"
	"github.com/MrJamesThe3rd/garage/internal/mechanic/store"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := dbtest.NewEmpty(t)
	s := store.New(db)
	ctx := context.Background()

	m := &mechanic.Mechanic{
		Name:       "Rita Gomes",
		HireDate:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		HourlyRate: decimal.RequireFromString("48.50"),
	}
	require.NoError(t, s.CreateMechanic(ctx, m))
	require.NotZero(t, m.ID)

	got, err := s.GetMechanic(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rita Gomes", got.Name)
	assert.True(t, m.HourlyRate.Equal(got.HourlyRate))
	assert.Equal(t, "2023-02-01", got.HireDate.Format(time.DateOnly))
}

func TestStore_NegativeRateIsValidation(t *testing.T) {
	db := dbtest.NewEmpty(t)
	s := store.New(db)

	err := s.CreateMechanic(context.Background(), &mechanic.Mechanic{
		Name:       "Sem Taxa",
		HireDate:   time.Now(),
		HourlyRate: decimal.NewFromInt(-1),
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestStore_UpdateMissing(t *testing.T) {
	db := dbtest.NewEmpty(t)
	s := store.New(db)

	err := s.UpdateMechanic(context.Background(), &mechanic.Mechanic{ID: 42, Name: "x", HireDate: time.Now()})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStore_DeleteKeepsServiceItems(t *testing.T) {
	db := dbtest.New(t)
	s := store.New(db)
	ctx := context.Background()

	require.NoError(t, s.DeleteMechanic(ctx, 1))

	var mechanicID sql.NullInt64
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT mechanic_id FROM work_order_items WHERE work_order_id = 1 AND kind = 'service'`,
	).Scan(&mechanicID))
	assert.False(t, mechanicID.Valid)

	_, err := s.GetMechanic(ctx, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, s.DeleteMechanic(ctx, 1), apperr.ErrNotFound)
}
