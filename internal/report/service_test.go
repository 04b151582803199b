package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/report"
)

// memCache is a JSON-encoding in-memory Cache.
type memCache struct {
	data   map[string][]byte
	gen    int64
	getErr error
	genErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}

	b, ok := c.data[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.data[key] = b

	return nil
}

func (c *memCache) Generation(context.Context) (int64, error) {
	return c.gen, c.genErr
}

func (c *memCache) Invalidate(context.Context) error {
	c.gen++
	return nil
}

func TestService_TopClientsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	c := newMemCache()

	want := []report.TopClient{
		{ClientID: 2, Name: "Transportes Rápidos Ltda", Orders: 1, AvgOrderValue: decimal.RequireFromString("320")},
	}

	repo.EXPECT().TopClients(gomock.Any(), 3).Return(want, nil).Times(1)

	svc := report.NewService(repo, report.WithCache(c, time.Minute))

	first, err := svc.TopClients(context.Background(), 3)
	require.NoError(t, err)

	second, err := svc.TopClients(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0].ClientID, second[0].ClientID)
	assert.True(t, first[0].AvgOrderValue.Equal(second[0].AvgOrderValue))
	assert.Contains(t, c.data, "report:0:top_clients:3")
}

func TestService_CacheFailureFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	c := newMemCache()
	c.getErr = errors.New("connection refused")

	repo.EXPECT().PartsUsage(gomock.Any()).Return([]report.PartUsage{{PartID: 3, Quantity: 2}}, nil).Times(2)

	svc := report.NewService(repo, report.WithCache(c, time.Minute))

	for range 2 {
		got, err := svc.PartsUsage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, got[0].Quantity)
	}
}

func TestService_InvalidateDropsCachedReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	c := newMemCache()

	gomock.InOrder(
		repo.EXPECT().OrdersPerClient(gomock.Any()).Return([]report.ClientOrders{{ClientID: 1, Orders: 1}}, nil),
		repo.EXPECT().OrdersPerClient(gomock.Any()).Return([]report.ClientOrders{{ClientID: 1, Orders: 2}}, nil),
	)

	svc := report.NewService(repo, report.WithCache(c, time.Minute))
	ctx := context.Background()

	got, err := svc.OrdersPerClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].Orders)

	got, err = svc.OrdersPerClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].Orders, "second read is served from cache")

	require.NoError(t, svc.Invalidate(ctx))

	got, err = svc.OrdersPerClient(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got[0].Orders)
	assert.Contains(t, c.data, "report:1:orders_per_client")
}

func TestService_GenerationFailureSkipsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	c := newMemCache()
	c.genErr = errors.New("connection refused")

	repo.EXPECT().MechanicHours(gomock.Any()).Return(nil, nil).Times(2)

	svc := report.NewService(repo, report.WithCache(c, time.Minute))

	for range 2 {
		_, err := svc.MechanicHours(context.Background())
		require.NoError(t, err)
	}

	assert.Empty(t, c.data)
}

func TestService_InvalidateWithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := report.NewService(report.NewMockRepository(ctrl))

	assert.NoError(t, svc.Invalidate(context.Background()))
}

func TestService_ZeroTTLDisablesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := report.NewMockRepository(ctrl)
	c := newMemCache()

	repo.EXPECT().OrdersPerClient(gomock.Any()).Return(nil, nil).Times(2)

	svc := report.NewService(repo, report.WithCache(c, 0))

	for range 2 {
		_, err := svc.OrdersPerClient(context.Background())
		require.NoError(t, err)
	}

	assert.Empty(t, c.data)
}

func TestService_ArgumentValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := report.NewMockRepository(ctrl)
	svc := report.NewService(repo)
	ctx := context.Background()

	type testCase struct {
		name string
		call func() error
	}

	tests := []testCase{
		{
			name: "LowStockWorkOrdersNegative",
			call: func() error { _, err := svc.LowStockWorkOrders(ctx, -1); return err },
		},
		{
			name: "LowStockPartsNegative",
			call: func() error { _, err := svc.LowStockParts(ctx, -5); return err },
		},
		{
			name: "BilledClientsNegative",
			call: func() error { _, err := svc.BilledClients(ctx, decimal.NewFromInt(-1)); return err },
		},
		{
			name: "TopClientsZero",
			call: func() error { _, err := svc.TopClients(ctx, 0); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.IsValidation(tt.call()))
		})
	}
}
