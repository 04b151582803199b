// Package respond writes JSON responses and translates apperr values into
// HTTP status codes for every handler package.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps err onto a status code. Anything outside the apperr taxonomy
// is logged and hidden behind a 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *apperr.ValidationError
		rerr *apperr.ReferenceError
		cerr *apperr.ConflictError
	)

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &verr):
		JSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Details: verr.Violations})
	case errors.As(err, &rerr):
		reason := rerr.Reason
		if reason == "" {
			reason = "does not exist"
		}

		JSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   err.Error(),
			Details: map[string]string{rerr.Field: reason},
		})
	case errors.As(err, &cerr):
		JSON(w, http.StatusConflict, errorResponse{
			Error:   err.Error(),
			Details: map[string]string{cerr.Field: cerr.Value},
		})
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// BadRequest is for input that never reached a service: undecodable bodies,
// malformed path ids, bad query parameters.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		BadRequest(w, "invalid request body: "+err.Error())
		return false
	}

	return true
}

// ID reads a positive integer path parameter.
func ID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(w, "invalid "+name)
		return 0, false
	}

	return id, true
}

// QueryInt reads an optional integer query parameter, falling back to def
// when it is absent.
func QueryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, true
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		BadRequest(w, "invalid "+name)
		return 0, false
	}

	return n, true
}

// QueryID reads an optional positive id query parameter.
func QueryID(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		BadRequest(w, "invalid "+name)
		return nil, false
	}

	return &id, true
}
