package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/catalog"
	"github.com/MrJamesThe3rd/garage/internal/catalog/store"
	"github.com/MrJamesThe3rd/garage/internal/database/dbtest"
)

func TestStore_CreatePartCreatesInventoryRecord(t *testing.T) {
	db := dbtest.New(t)
	s := store.New(db)
	ctx := context.Background()

	p := &catalog.Part{
		SupplierID: 2,
		SKU:        "CORR-DENT-004",
		Name:       "Correia dentada",
		CostPrice:  decimal.RequireFromString("80"),
		SalePrice:  decimal.RequireFromString("150"),
	}
	require.NoError(t, s.CreatePart(ctx, p, 6, "C3"))

	var qty int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT quantity FROM inventory WHERE part_id = $1`, p.ID).Scan(&qty))
	assert.Equal(t, 6, qty)
}

func TestStore_CreatePartDuplicateSKU(t *testing.T) {
	db := dbtest.New(t)

	err := store.New(db).CreatePart(context.Background(), &catalog.Part{SupplierID: 1, SKU: "FLT-OLEO-001", Name: "dup"}, 0, "")

	var cerr *apperr.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "FLT-OLEO-001", cerr.Value)
}

func TestStore_DeleteSupplierWithParts(t *testing.T) {
	db := dbtest.New(t)

	err := store.New(db).DeleteSupplier(context.Background(), 1)
	assert.True(t, apperr.IsConflict(err))
}

func TestStore_UpsertPriceList(t *testing.T) {
	db := dbtest.New(t)
	s := store.New(db)
	ctx := context.Background()

	res, err := s.UpsertPriceList(ctx, 1, []catalog.PriceListEntry{
		{SKU: "FLT-OLEO-001", Name: "Filtro de óleo", CostPrice: decimal.RequireFromString("16"), SalePrice: decimal.RequireFromString("27")},
		{SKU: "FLT-AR-010", Name: "Filtro de ar", CostPrice: decimal.RequireFromString("12"), SalePrice: decimal.RequireFromString("22")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Updated)

	p, err := s.GetPart(ctx, 1)
	require.NoError(t, err)
	assert.True(t, p.SalePrice.Equal(decimal.RequireFromString("27")), p.SalePrice.String())

	_, err = s.UpsertPriceList(ctx, 2, []catalog.PriceListEntry{{SKU: "FLT-OLEO-001", Name: "stolen"}})
	assert.True(t, apperr.IsConflict(err))
}
