package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/http/respond"
	"github.com/MrJamesThe3rd/garage/internal/report"
)

// Defaults fill in query parameters the caller leaves out.
type Defaults struct {
	LowStockThreshold int
	BilledThreshold   decimal.Decimal
	TopClients        int
}

type Handler struct {
	svc      *report.Service
	defaults Defaults
}

func NewHandler(svc *report.Service, defaults Defaults) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/orders-per-client", h.ordersPerClient)
	r.Get("/low-stock-work-orders", h.lowStockWorkOrders)
	r.Get("/work-order-costs", h.workOrderCosts)
	r.Get("/mechanic-hours", h.mechanicHours)
	r.Get("/parts-usage", h.partsUsage)
	r.Get("/billed-clients", h.billedClients)
	r.Get("/work-orders/{id}/breakdown", h.breakdown)
	r.Get("/low-stock-parts", h.lowStockParts)
	r.Get("/mechanic-revenue", h.mechanicRevenue)
	r.Get("/top-clients", h.topClients)
}

// write sends rows as a JSON array, never null.
func write[T any](w http.ResponseWriter, r *http.Request, rows []T, err error) {
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if rows == nil {
		rows = []T{}
	}

	respond.JSON(w, http.StatusOK, rows)
}

func (h *Handler) ordersPerClient(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.OrdersPerClient(r.Context())
	write(w, r, rows, err)
}

func (h *Handler) lowStockWorkOrders(w http.ResponseWriter, r *http.Request) {
	threshold, ok := respond.QueryInt(w, r, "threshold", h.defaults.LowStockThreshold)
	if !ok {
		return
	}

	rows, err := h.svc.LowStockWorkOrders(r.Context(), threshold)
	write(w, r, rows, err)
}

func (h *Handler) workOrderCosts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.WorkOrderCosts(r.Context())
	write(w, r, rows, err)
}

func (h *Handler) mechanicHours(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.MechanicHours(r.Context())
	write(w, r, rows, err)
}

func (h *Handler) partsUsage(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.PartsUsage(r.Context())
	write(w, r, rows, err)
}

func (h *Handler) billedClients(w http.ResponseWriter, r *http.Request) {
	threshold := h.defaults.BilledThreshold

	if s := r.URL.Query().Get("threshold"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			respond.BadRequest(w, "invalid threshold")
			return
		}

		threshold = d
	}

	rows, err := h.svc.BilledClients(r.Context(), threshold)
	write(w, r, rows, err)
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.svc.WorkOrderBreakdown(r.Context(), id)
	write(w, r, rows, err)
}

func (h *Handler) lowStockParts(w http.ResponseWriter, r *http.Request) {
	threshold, ok := respond.QueryInt(w, r, "threshold", h.defaults.LowStockThreshold)
	if !ok {
		return
	}

	rows, err := h.svc.LowStockParts(r.Context(), threshold)
	write(w, r, rows, err)
}

func (h *Handler) mechanicRevenue(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.MechanicRevenue(r.Context())
	write(w, r, rows, err)
}

func (h *Handler) topClients(w http.ResponseWriter, r *http.Request) {
	n, ok := respond.QueryInt(w, r, "n", h.defaults.TopClients)
	if !ok {
		return
	}

	rows, err := h.svc.TopClients(r.Context(), n)
	write(w, r, rows, err)
}
