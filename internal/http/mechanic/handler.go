package mechanic

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/http/respond"
	"github.com/MrJamesThe3rd/garage/internal/mechanic"
)

type Handler struct {
	svc *mechanic.Service
}

func NewHandler(svc *mechanic.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// hire_date travels as a plain date; an empty one means today on create and
// "unchanged" on update.
type mechanicRequest struct {
	Name       string          `json:"name"`
	HireDate   string          `json:"hire_date"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type mechanicResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	HireDate   string          `json:"hire_date"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toResponse(m *mechanic.Mechanic) mechanicResponse {
	return mechanicResponse{
		ID:         m.ID,
		Name:       m.Name,
		HireDate:   m.HireDate.Format(time.DateOnly),
		HourlyRate: m.HourlyRate,
		CreatedAt:  m.CreatedAt,
	}
}

func (h *Handler) params(w http.ResponseWriter, r *http.Request) (mechanic.Params, bool) {
	var req mechanicRequest
	if !respond.Decode(w, r, &req) {
		return mechanic.Params{}, false
	}

	params := mechanic.Params{Name: req.Name, HourlyRate: req.HourlyRate}

	if req.HireDate != "" {
		t, err := time.Parse(time.DateOnly, req.HireDate)
		if err != nil {
			respond.BadRequest(w, "hire_date must be YYYY-MM-DD")
			return mechanic.Params{}, false
		}

		params.HireDate = t
	}

	return params, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	params, ok := h.params(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ms, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]mechanicResponse, len(ms))
	for i, m := range ms {
		resp[i] = toResponse(m)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	params, ok := h.params(w, r)
	if !ok {
		return
	}

	m, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
