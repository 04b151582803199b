package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/http/respond"
)

type body struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func TestError(t *testing.T) {
	type testCase struct {
		name        string
		err         error
		wantStatus  int
		wantDetails map[string]string
	}

	tests := []testCase{
		{
			name:       "NotFound",
			err:        fmt.Errorf("getting client: %w", apperr.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:        "Validation",
			err:         apperr.Invalid("payment", "amount", "must be greater than 0"),
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetails: map[string]string{"amount": "must be greater than 0"},
		},
		{
			name:        "Reference",
			err:         apperr.Missing("work_order", "vehicle_id", 7),
			wantStatus:  http.StatusUnprocessableEntity,
			wantDetails: map[string]string{"vehicle_id": "does not exist"},
		},
		{
			name:        "Conflict",
			err:         &apperr.ConflictError{Entity: "part", Field: "sku", Value: "FLT-001"},
			wantStatus:  http.StatusConflict,
			wantDetails: map[string]string{"sku": "FLT-001"},
		},
		{
			name:       "Internal",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got body
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.NotEmpty(t, got.Error)
			assert.Equal(t, tt.wantDetails, got.Details)

			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "internal error", got.Error)
			}
		})
	}
}

func TestID(t *testing.T) {
	type testCase struct {
		name   string
		path   string
		wantOK bool
		wantID int64
	}

	tests := []testCase{
		{name: "Valid", path: "/things/42", wantOK: true, wantID: 42},
		{name: "Zero", path: "/things/0"},
		{name: "NotANumber", path: "/things/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotID int64
				gotOK bool
			)

			r := chi.NewRouter()
			r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
				gotID, gotOK = respond.ID(w, r, "id")
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantOK, gotOK)
			assert.Equal(t, tt.wantID, gotID)

			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}
