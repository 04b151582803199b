package billing

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/apperr"
	"github.com/MrJamesThe3rd/garage/internal/billing"
	"github.com/MrJamesThe3rd/garage/internal/http/respond"
)

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/payments", h.listPayments)
	r.Post("/{id}/payments", h.recordPayment)
	r.Get("/{id}/summary", h.summary)
	r.Post("/{id}/paid", h.markPaid)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := billing.ListFilter{}

	if s := r.URL.Query().Get("paid"); s != "" {
		paid, err := strconv.ParseBool(s)
		if err != nil {
			respond.BadRequest(w, "invalid paid")
			return
		}

		filter.Paid = &paid
	}

	invs, err := h.svc.ListInvoices(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]InvoiceResponse, len(invs))
	for i, inv := range invs {
		resp[i] = ToInvoiceResponse(inv)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToInvoiceResponse(inv))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	ps, err := h.svc.ListPayments(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]paymentResponse, len(ps))
	for i, p := range ps {
		resp[i] = toPaymentResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type paymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method billing.Method  `json:"method"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req paymentRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.RecordPayment(r.Context(), id, req.Amount, req.Method)
	if err != nil {
		if apperr.IsReference(err) {
			err = fmt.Errorf("invoice %d: %w", id, apperr.ErrNotFound)
		}

		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	s, err := h.svc.Summary(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(s))
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	inv, err := h.svc.MarkPaid(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToInvoiceResponse(inv))
}
