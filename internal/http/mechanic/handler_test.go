package mechanic_test

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
	mechanicHandler "github.com/MrJamesThe3rd/garage/internal/http/mechanic"
	"github.com/MrJamesThe3rd/garage/internal/mechanic"
)

func newRouter(repo mechanic.Repository) http.Handler {
	h := mechanicHandler.NewHandler(mechanic.NewService(repo))

	r := chi.NewRouter()
	r.Route("/mechanics", h.Routes)

	return r
}

func do(t *testing.T, repo mechanic.Repository, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}

	return rec, decoded
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *mechanic.MockRepository)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}

	tests := []testCase{
		{
			name: "Created",
			body: `{"name":" João Lima ","hire_date":"2021-03-15","hourly_rate":"85.00"}`,
			setupMock: func(m *mechanic.MockRepository) {
				m.EXPECT().CreateMechanic(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mech *mechanic.Mechanic) error {
						mech.ID = 5
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.InDelta(t, 5, body["id"], 0)
				assert.Equal(t, "João Lima", body["name"])
				assert.Equal(t, "2021-03-15", body["hire_date"])
				assert.Equal(t, "85", body["hourly_rate"])
			},
		},
		{
			name:       "MissingName",
			body:       `{"name":"  ","hourly_rate":"50"}`,
			setupMock:  func(m *mechanic.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["details"], "name")
			},
		},
		{
			name:       "RateWithThirdDecimal",
			body:       `{"name":"Ana","hourly_rate":"45.555"}`,
			setupMock:  func(m *mechanic.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Contains(t, body["details"], "hourly_rate")
			},
		},
		{
			name:       "BadHireDate",
			body:       `{"name":"Ana","hire_date":"15/03/2021","hourly_rate":"50"}`,
			setupMock:  func(m *mechanic.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mechanic.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec, body := do(t, repo, http.MethodPost, "/mechanics/", tt.body)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestHandler_Update(t *testing.T) {
	hired := time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("KeepsHireDateWhenOmitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mechanic.NewMockRepository(ctrl)

		repo.EXPECT().GetMechanic(gomock.Any(), int64(2)).
			Return(&mechanic.Mechanic{ID: 2, Name: "Carlos", HireDate: hired, HourlyRate: decimal.NewFromInt(60)}, nil)
		repo.EXPECT().UpdateMechanic(gomock.Any(), gomock.Any()).Return(nil)

		rec, body := do(t, repo, http.MethodPut, "/mechanics/2", `{"name":"Carlos Souza","hourly_rate":"70.50"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "Carlos Souza", body["name"])
		assert.Equal(t, "2019-08-01", body["hire_date"])
		assert.Equal(t, "70.5", body["hourly_rate"])
	})

	t.Run("Unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mechanic.NewMockRepository(ctrl)

		repo.EXPECT().GetMechanic(gomock.Any(), int64(9)).Return(nil, apperr.ErrNotFound)

		rec, _ := do(t, repo, http.MethodPut, "/mechanics/9", `{"name":"Nobody","hourly_rate":"10"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	type testCase struct {
		name       string
		path       string
		setupMock  func(m *mechanic.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Deleted",
			path: "/mechanics/2",
			setupMock: func(m *mechanic.MockRepository) {
				m.EXPECT().DeleteMechanic(gomock.Any(), int64(2)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "Unknown",
			path: "/mechanics/9",
			setupMock: func(m *mechanic.MockRepository) {
				m.EXPECT().DeleteMechanic(gomock.Any(), int64(9)).Return(apperr.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "StillReferenced",
			path: "/mechanics/1",
			setupMock: func(m *mechanic.MockRepository) {
				m.EXPECT().DeleteMechanic(gomock.Any(), int64(1)).
					Return(&apperr.ReferenceError{Entity: "mechanic", Field: "id", ID: 1, Reason: "has service items"})
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "InvalidID",
			path:       "/mechanics/x",
			setupMock:  func(m *mechanic.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mechanic.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec, _ := do(t, repo, http.MethodDelete, tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
