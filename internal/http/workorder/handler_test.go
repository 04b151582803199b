package workorder_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/billing"
	woHandler "github.com/MrJamesThe3rd/garage/internal/http/workorder"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
)

type fixture struct {
	repo    *workorder.MockRepository
	tx      *workorder.MockTx
	billing *billing.MockRepository
	router  http.Handler
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:    workorder.NewMockRepository(ctrl),
		tx:      workorder.NewMockTx(ctrl),
		billing: billing.NewMockRepository(ctrl),
	}

	now := func() time.Time { return time.Date(2024, 5, 16, 10, 0, 0, 0, time.UTC) }
	h := woHandler.NewHandler(
		workorder.NewService(f.repo),
		billing.NewService(f.billing, 7, billing.WithClock(now)),
	)

	r := chi.NewRouter()
	r.Route("/work-orders", h.Routes)
	f.router = r

	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Get_RecomputesTotal(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetWorkOrder(gomock.Any(), int64(3)).
		Return(&workorder.WorkOrder{ID: 3, ClientID: 3, VehicleID: 3, Status: workorder.StatusOpen, Total: decimal.Zero}, nil)
	f.repo.EXPECT().ListItems(gomock.Any(), int64(3)).Return([]*workorder.Item{
		{Kind: workorder.KindService, Quantity: 1, UnitPrice: decimal.RequireFromString("80"),
			Hours: decimal.RequireFromString("1"), MechanicRate: decimal.RequireFromString("55")},
		{Kind: workorder.KindPart, Quantity: 1, UnitPrice: decimal.RequireFromString("50")},
	}, nil)

	rec := f.do(http.MethodGet, "/work-orders/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total  decimal.Decimal `json:"total"`
		Status string          `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, decimal.RequireFromString("185").Equal(body.Total), body.Total.String())
	assert.Equal(t, "open", body.Status)
}

func TestHandler_AddItem(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(f *fixture)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "ExceedsStock",
			body: `{"kind":"part","part_id":3,"quantity":4,"unit_price":"120"}`,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
				f.tx.EXPECT().LockWorkOrder(gomock.Any(), int64(1)).Return(&workorder.WorkOrder{ID: 1}, nil)
				f.tx.EXPECT().PartQuantity(gomock.Any(), int64(3)).Return(3, nil)
				f.tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "UnknownWorkOrder",
			body: `{"kind":"service","mechanic_id":1,"quantity":1,"hours":"1"}`,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
				f.tx.EXPECT().LockWorkOrder(gomock.Any(), int64(1)).Return(nil, apperr.ErrNotFound)
				f.tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "ServiceWithoutMechanic",
			body:       `{"kind":"service","quantity":1}`,
			setupMock:  func(f *fixture) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "Created",
			body: `{"kind":"part","part_id":2,"quantity":2,"unit_price":"45.50"}`,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
				f.tx.EXPECT().LockWorkOrder(gomock.Any(), int64(1)).Return(&workorder.WorkOrder{ID: 1}, nil)
				f.tx.EXPECT().PartQuantity(gomock.Any(), int64(2)).Return(10, nil)
				f.tx.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, it *workorder.Item) error {
						it.ID = 9
						return nil
					})
				f.tx.EXPECT().ListItems(gomock.Any(), int64(1)).Return(nil, nil)
				f.tx.EXPECT().UpdateTotal(gomock.Any(), int64(1), gomock.Any()).Return(nil)
				f.tx.EXPECT().Commit().Return(nil)
				f.tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			rec := f.do(http.MethodPost, "/work-orders/1/items", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_UpdateStatus(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
	f.tx.EXPECT().LockWorkOrder(gomock.Any(), int64(2)).
		Return(&workorder.WorkOrder{ID: 2, Status: workorder.StatusInProgress}, nil)
	f.tx.EXPECT().UpdateStatus(gomock.Any(), int64(2), workorder.StatusCompleted).Return(nil)
	f.tx.EXPECT().AppendStatusLog(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().Commit().Return(nil)
	f.tx.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodPatch, "/work-orders/2/status", `{"status":"completed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "in_progress", body["old_status"])
	assert.Equal(t, "completed", body["new_status"])
}

func TestHandler_IssueInvoice(t *testing.T) {
	type testCase struct {
		name       string
		setupMock  func(f *fixture, tx *billing.MockTx)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Issued",
			setupMock: func(f *fixture, tx *billing.MockTx) {
				f.billing.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockWorkOrder(gomock.Any(), int64(3)).Return(nil)
				tx.EXPECT().InvoiceForWorkOrder(gomock.Any(), int64(3)).Return(nil, apperr.ErrNotFound)
				tx.EXPECT().ListItems(gomock.Any(), int64(3)).Return(nil, nil)
				tx.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "AlreadyInvoiced",
			setupMock: func(f *fixture, tx *billing.MockTx) {
				f.billing.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockWorkOrder(gomock.Any(), int64(3)).Return(nil)
				tx.EXPECT().InvoiceForWorkOrder(gomock.Any(), int64(3)).Return(&billing.Invoice{ID: 3}, nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "UnknownWorkOrder",
			setupMock: func(f *fixture, tx *billing.MockTx) {
				f.billing.EXPECT().Begin(gomock.Any()).Return(tx, nil)
				tx.EXPECT().LockWorkOrder(gomock.Any(), int64(3)).Return(apperr.ErrNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f, billing.NewMockTx(gomock.NewController(t)))

			rec := f.do(http.MethodPost, "/work-orders/3/invoice", "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_IssueInvoice_DueDate(t *testing.T) {
	f := newFixture(t)
	tx := billing.NewMockTx(gomock.NewController(t))

	f.billing.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().LockWorkOrder(gomock.Any(), int64(3)).Return(nil)
	tx.EXPECT().InvoiceForWorkOrder(gomock.Any(), int64(3)).Return(nil, apperr.ErrNotFound)
	tx.EXPECT().ListItems(gomock.Any(), int64(3)).Return(nil, nil)
	tx.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	rec := f.do(http.MethodPost, "/work-orders/3/invoice", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2024-05-23", body["due_date"])
	assert.Equal(t, false, body["paid"])
}
