package appointment

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/garage/internal/appointment"
	"github.com/MrJamesThe3rd/garage/internal/http/respond"
)

type Handler struct {
	svc *appointment.Service
}

func NewHandler(svc *appointment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.schedule)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type appointmentResponse struct {
	ID          int64              `json:"id"`
	ClientID    int64              `json:"client_id"`
	VehicleID   int64              `json:"vehicle_id"`
	ScheduledAt time.Time          `json:"scheduled_at"`
	Reason      string             `json:"reason"`
	Status      appointment.Status `json:"status"`
}

func toResponse(a *appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		ClientID:    a.ClientID,
		VehicleID:   a.VehicleID,
		ScheduledAt: a.ScheduledAt,
		Reason:      a.Reason,
		Status:      a.Status,
	}
}

func (h *Handler) schedule(w http.ResponseWriter, r *http.Request) {
	var req appointment.ScheduleParams
	if !respond.Decode(w, r, &req) {
		return
	}

	a, err := h.svc.Schedule(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	clientID, ok := respond.QueryID(w, r, "client_id")
	if !ok {
		return
	}

	if clientID == nil {
		respond.BadRequest(w, "client_id query parameter is required")
		return
	}

	as, err := h.svc.ListForClient(r.Context(), *clientID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]appointmentResponse, len(as))
	for i, a := range as {
		resp[i] = toResponse(a)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(a))
}

type updateStatusRequest struct {
	Status appointment.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	a, err := h.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(a))
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
