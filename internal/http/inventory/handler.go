package inventory

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/garage/internal/http/respond"
	"github.com/MrJamesThe3rd/garage/internal/inventory"
)

type Handler struct {
	svc              *inventory.Service
	defaultThreshold int
}

func NewHandler(svc *inventory.Service, defaultThreshold int) *Handler {
	return &Handler{svc: svc, defaultThreshold: defaultThreshold}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/low", h.listLow)
	r.Get("/{partID}", h.get)
	r.Post("/{partID}/adjust", h.adjust)
	r.Put("/{partID}/location", h.setLocation)
}

type recordResponse struct {
	PartID    int64     `json:"part_id"`
	Quantity  int       `json:"quantity"`
	Location  string    `json:"location"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(rec *inventory.Record) recordResponse {
	return recordResponse{
		PartID:    rec.PartID,
		Quantity:  rec.Quantity,
		Location:  rec.Location,
		UpdatedAt: rec.UpdatedAt,
	}
}

type lowStockResponse struct {
	Threshold int     `json:"threshold"`
	PartIDs   []int64 `json:"part_ids"`
}

func (h *Handler) listLow(w http.ResponseWriter, r *http.Request) {
	threshold, ok := respond.QueryInt(w, r, "threshold", h.defaultThreshold)
	if !ok {
		return
	}

	ids, err := h.svc.ListBelowThreshold(r.Context(), threshold)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if ids == nil {
		ids = []int64{}
	}

	respond.JSON(w, http.StatusOK, lowStockResponse{Threshold: threshold, PartIDs: ids})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	partID, ok := respond.ID(w, r, "partID")
	if !ok {
		return
	}

	rec, err := h.svc.Get(r.Context(), partID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

type adjustResponse struct {
	PartID   int64 `json:"part_id"`
	Quantity int   `json:"quantity"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	partID, ok := respond.ID(w, r, "partID")
	if !ok {
		return
	}

	var req adjustRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	qty, err := h.svc.Adjust(r.Context(), partID, req.Delta)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, adjustResponse{PartID: partID, Quantity: qty})
}

type locationRequest struct {
	Location string `json:"location"`
}

func (h *Handler) setLocation(w http.ResponseWriter, r *http.Request) {
	partID, ok := respond.ID(w, r, "partID")
	if !ok {
		return
	}

	var req locationRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	rec, err := h.svc.SetLocation(r.Context(), partID, req.Location)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(rec))
}
