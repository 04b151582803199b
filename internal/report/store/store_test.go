package store_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/database/dbtest"
	"github.com/MrJamesThe3rd/garage/internal/report"
	"github.com/MrJamesThe3rd/garage/internal/report/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "want %s, got %s", want, got)
}

func TestStore_SeedReports(t *testing.T) {
	db := dbtest.New(t)
	svc := report.NewService(store.New(db))
	ctx := context.Background()

	t.Run("OrdersPerClient", func(t *testing.T) {
		got, err := svc.OrdersPerClient(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)

		for i, row := range got {
			assert.Equal(t, int64(i+1), row.ClientID)
			assert.Equal(t, 1, row.Orders)
		}
	})

	t.Run("LowStockWorkOrders", func(t *testing.T) {
		got, err := svc.LowStockWorkOrders(ctx, 5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].WorkOrderID)
		assert.Equal(t, int64(3), got[0].PartID)
		assert.Equal(t, 3, got[0].OnHand)
	})

	t.Run("WorkOrderCosts", func(t *testing.T) {
		got, err := svc.WorkOrderCosts(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assertDec(t, "172.5", got[0].Cost)
		assertDec(t, "320", got[1].Cost)
		assertDec(t, "185", got[2].Cost)
	})

	t.Run("MechanicHours", func(t *testing.T) {
		got, err := svc.MechanicHours(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int64{2, 1, 3}, []int64{got[0].MechanicID, got[1].MechanicID, got[2].MechanicID})
		assertDec(t, "2", got[0].Hours)
	})

	t.Run("PartsUsage", func(t *testing.T) {
		got, err := svc.PartsUsage(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, int64(3), got[0].PartID)
		assert.Equal(t, 2, got[0].Quantity)
		assert.Equal(t, int64(1), got[1].PartID)
	})

	t.Run("BilledClients", func(t *testing.T) {
		got, err := svc.BilledClients(ctx, dec("200"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ClientID)
		assertDec(t, "320", got[0].Invoiced)
		assertDec(t, "0", got[0].Paid)

		got, err = svc.BilledClients(ctx, dec("100"))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, int64(1), got[2].ClientID)
		assertDec(t, "172.5", got[2].Paid)
	})

	t.Run("WorkOrderBreakdown", func(t *testing.T) {
		got, err := svc.WorkOrderBreakdown(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "service", got[0].Kind)
		assertDec(t, "147.5", got[0].Subtotal)
		assertDec(t, "25", got[1].Subtotal)

		_, err = svc.WorkOrderBreakdown(ctx, 42)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("LowStockParts", func(t *testing.T) {
		got, err := svc.LowStockParts(ctx, 5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].PartID)
		assert.Equal(t, 1, got[0].WorkOrders)
	})

	t.Run("MechanicRevenue", func(t *testing.T) {
		got, err := svc.MechanicRevenue(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, int64(2), got[0].MechanicID)
		assertDec(t, "200", got[0].Total)
		assertDec(t, "67.5", got[1].Labor)
		assertDec(t, "80", got[1].Lines)
		assertDec(t, "115", got[2].Total)
	})

	t.Run("TopClients", func(t *testing.T) {
		got, err := svc.TopClients(ctx, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []int64{2, 3, 1}, []int64{got[0].ClientID, got[1].ClientID, got[2].ClientID})
		assertDec(t, "320", got[0].AvgOrderValue)

		got, err = svc.TopClients(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestStore_CostsIgnoreStoredTotal(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `UPDATE work_orders SET total = 0`)
	require.NoError(t, err)

	got, err := store.New(db).WorkOrderCosts(ctx)
	require.NoError(t, err)
	assertDec(t, "172.5", got[0].Cost)
}

func TestStore_EmptyDatabase(t *testing.T) {
	db := dbtest.NewEmpty(t)

	got, err := store.New(db).TopClients(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}
