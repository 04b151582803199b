package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/catalog"
	"github.com/MrJamesThe3rd/garage/internal/http/respond"
	"github.com/MrJamesThe3rd/garage/internal/importer"
)

const maxUploadSize = 10 << 20

type Handler struct {
	svc       *catalog.Service
	importSvc *importer.Service
}

func NewHandler(svc *catalog.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) SupplierRoutes(r chi.Router) {
	r.Post("/", h.createSupplier)
	r.Get("/", h.listSuppliers)
	r.Get("/{id}", h.getSupplier)
	r.Delete("/{id}", h.deleteSupplier)
	r.Post("/{id}/price-list", h.importPriceList)
}

func (h *Handler) PartRoutes(r chi.Router) {
	r.Post("/", h.createPart)
	r.Get("/", h.listParts)
	r.Get("/{id}", h.getPart)
	r.Patch("/{id}/prices", h.updatePrices)
	r.Delete("/{id}", h.deletePart)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req catalog.SupplierParams
	if !respond.Decode(w, r, &req) {
		return
	}

	s, err := h.svc.CreateSupplier(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toSupplierResponse(s))
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	ss, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]supplierResponse, len(ss))
	for i, s := range ss {
		resp[i] = toSupplierResponse(s)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	s, err := h.svc.GetSupplier(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSupplierResponse(s))
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSupplier(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// importPriceList takes a multipart upload with a "file" field and an
// optional "format" (csv when empty).
func (h *Handler) importPriceList(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	entries, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	result, err := h.svc.ImportPriceList(r.Context(), id, entries)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, importResponse{
		Created: result.Created,
		Updated: result.Updated,
		Parts:   toPartResponseList(result.Parts),
	})
}

func (h *Handler) createPart(w http.ResponseWriter, r *http.Request) {
	var req catalog.PartParams
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.CreatePart(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toPartResponse(p))
}

func (h *Handler) listParts(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := respond.QueryID(w, r, "supplier_id")
	if !ok {
		return
	}

	ps, err := h.svc.ListParts(r.Context(), catalog.ListFilter{SupplierID: supplierID})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPartResponseList(ps))
}

func (h *Handler) getPart(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetPart(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPartResponse(p))
}

type updatePricesRequest struct {
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

func (h *Handler) updatePrices(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	var req updatePricesRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.UpdatePrices(r.Context(), id, req.CostPrice, req.SalePrice)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toPartResponse(p))
}

func (h *Handler) deletePart(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeletePart(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
