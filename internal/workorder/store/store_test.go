package store_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/database/dbtest"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
	"github.com/MrJamesThe3rd/garage/internal/workorder/store"
)

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), query, args...).Scan(&n))

	return n
}

func TestStore_SeedTotals(t *testing.T) {
	db := dbtest.New(t)
	svc := workorder.NewService(store.New(db))
	ctx := context.Background()

	want := map[int64]string{1: "172.5", 2: "320", 3: "185"}

	for id, total := range want {
		got, err := svc.RecomputeTotal(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString(total)), "work order %d: got %s", id, got)

		again, err := svc.RecomputeTotal(ctx, id)
		require.NoError(t, err)
		assert.True(t, got.Equal(again))
	}
}

func TestStore_AddItemRefreshesTotal(t *testing.T) {
	db := dbtest.New(t)
	repo := store.New(db)
	svc := workorder.NewService(repo)
	ctx := context.Background()

	partID := int64(1)

	_, err := svc.AddItem(ctx, 1, workorder.ItemParams{
		Kind:      workorder.KindPart,
		PartID:    &partID,
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("25"),
	})
	require.NoError(t, err)

	wo, err := repo.GetWorkOrder(ctx, 1)
	require.NoError(t, err)
	assert.True(t, wo.Total.Equal(decimal.RequireFromString("222.5")), "got %s", wo.Total)

	lowStock := int64(3)

	_, err = svc.AddItem(ctx, 1, workorder.ItemParams{
		Kind:      workorder.KindPart,
		PartID:    &lowStock,
		Quantity:  4,
		UnitPrice: decimal.RequireFromString("35"),
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestStore_RemoveItem(t *testing.T) {
	db := dbtest.New(t)
	repo := store.New(db)
	svc := workorder.NewService(repo)
	ctx := context.Background()

	items, err := repo.ListItems(ctx, 3)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, svc.RemoveItem(ctx, 3, items[1].ID))

	wo, err := repo.GetWorkOrder(ctx, 3)
	require.NoError(t, err)
	assert.True(t, wo.Total.Equal(decimal.RequireFromString("115")), "got %s", wo.Total)

	err = svc.RemoveItem(ctx, 1, items[0].ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStore_ConcurrentTransitionsKeepEveryLogEntry(t *testing.T) {
	db := dbtest.New(t)
	svc := workorder.NewService(store.New(db))
	ctx := context.Background()

	const n = 12

	before := count(t, db, `SELECT COUNT(*) FROM work_order_status_log WHERE work_order_id = 3`)

	var wg sync.WaitGroup

	for i := range n {
		to := workorder.Statuses[i%len(workorder.Statuses)]

		wg.Go(func() {
			_, err := svc.TransitionStatus(ctx, 3, to)
			assert.NoError(t, err)
		})
	}

	wg.Wait()

	log, err := svc.StatusLog(ctx, 3)
	require.NoError(t, err)
	require.Len(t, log, before+n)

	// Each entry starts where the previous one ended.
	prev := workorder.StatusOpen
	for _, e := range log[before:] {
		assert.Equal(t, prev, e.OldStatus)
		prev = e.NewStatus
	}

	wo, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, prev, wo.Status)
}

func TestStore_DeleteCascades(t *testing.T) {
	db := dbtest.New(t)
	repo := store.New(db)
	ctx := context.Background()

	require.NoError(t, repo.DeleteWorkOrder(ctx, 2))

	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM work_order_items WHERE work_order_id = 2`))
	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM invoices WHERE work_order_id = 2`))
	assert.Zero(t, count(t, db, `SELECT COUNT(*) FROM work_order_status_log WHERE work_order_id = 2`))

	assert.ErrorIs(t, repo.DeleteWorkOrder(ctx, 2), apperr.ErrNotFound)
}

func TestStore_CreateRejectsForeignVehicle(t *testing.T) {
	db := dbtest.New(t)
	svc := workorder.NewService(store.New(db))

	_, err := svc.Create(context.Background(), workorder.CreateParams{ClientID: 1, VehicleID: 2})
	assert.True(t, apperr.IsReference(err))

	wo, err := svc.Create(context.Background(), workorder.CreateParams{ClientID: 2, VehicleID: 2})
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusOpen, wo.Status)
	assert.Equal(t, 4, count(t, db, `SELECT COUNT(*) FROM work_orders`))
}
