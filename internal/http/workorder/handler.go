package workorder

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/billing"
	billingHandler "github.com/MrJamesThe3rd/garage/internal/http/billing"
	"github.com/MrJamesThe3rd/garage/internal/http/respond"
	"github.com/MrJamesThe3rd/garage/internal/workorder"
)

type Handler struct {
	svc        *workorder.Service
	billingSvc *billing.Service
}

func NewHandler(svc *workorder.Service, billingSvc *billing.Service) *Handler {
	return &Handler{svc: svc, billingSvc: billingSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/items", h.listItems)
	r.Post("/{id}/items", h.addItem)
	r.Delete("/{id}/items/{itemID}", h.removeItem)
	r.Patch("/{id}/status", h.updateStatus)
	r.Get("/{id}/log", h.statusLog)
	r.Post("/{id}/total", h.recompute)
	r.Post("/{id}/invoice", h.issueInvoice)
	r.Get("/{id}/invoice", h.getInvoice)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req workorder.CreateParams
	if !respond.Decode(w, r, &req) {
		return
	}

	wo, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(wo))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := workorder.ListFilter{}

	clientID, ok := respond.QueryID(w, r, "client_id")
	if !ok {
		return
	}

	vehicleID, ok := respond.QueryID(w, r, "vehicle_id")
	if !ok {
		return
	}

	filter.ClientID = clientID
	filter.VehicleID = vehicleID

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(workorder.Status(s))
	}

	wos, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(wos))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	wo, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(wo))
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

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.svc.Items(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = toItemResponse(it)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req workorder.ItemParams
	if !respond.Decode(w, r, &req) {
		return
	}

	item, err := h.svc.AddItem(r.Context(), id, req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	itemID, ok := respond.ID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.svc.RemoveItem(r.Context(), id, itemID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status workorder.Status `json:"status"`
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

	entry, err := h.svc.TransitionStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toStatusLogResponse(entry))
}

func (h *Handler) statusLog(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.svc.StatusLog(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]statusLogResponse, len(entries))
	for i, e := range entries {
		resp[i] = toStatusLogResponse(e)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	total, err := h.svc.RecomputeTotal(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, totalResponse{WorkOrderID: id, Total: total})
}

func (h *Handler) issueInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	inv, err := h.billingSvc.IssueInvoice(r.Context(), id)
	if err != nil {
		if apperr.IsReference(err) {
			err = fmt.Errorf("work order %d: %w", id, apperr.ErrNotFound)
		}

		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, billingHandler.ToInvoiceResponse(inv))
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	inv, err := h.billingSvc.InvoiceForWorkOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, billingHandler.ToInvoiceResponse(inv))
}
