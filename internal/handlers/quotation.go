package handlers

import (
	"net/http"

	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/sirupsen/logrus"
)

type quotationRequest struct {
	ClientID   uint          `json:"client_id"`
	IssueDate  Date          `json:"issue_date"`
	ValidUntil Date          `json:"valid_until"`
	Status     string        `json:"status"`
	Notes      string        `json:"notes"`
	Terms      string        `json:"terms"`
	Items      []itemRequest `json:"items"`
}

func (req quotationRequest) input() services.QuotationInput {
	return services.QuotationInput{
		ClientID:   req.ClientID,
		IssueDate:  req.IssueDate.Time,
		ValidUntil: req.ValidUntil.Ptr(),
		Status:     req.Status,
		Notes:      req.Notes,
		Terms:      req.Terms,
		Items:      itemInputs(req.Items),
	}
}

type QuotationHandler struct {
	svc  *services.QuotationService
	docs *services.DocumentService
	log  logrus.FieldLogger
}

func NewQuotationHandler(svc *services.QuotationService, docs *services.DocumentService, log logrus.FieldLogger) *QuotationHandler {
	return &QuotationHandler{svc: svc, docs: docs, log: log}
}

func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), listing.Parse(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *QuotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	q, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req quotationRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	q, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	var req quotationRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	q, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Convert creates an invoice from the quotation and marks it accepted.
func (h *QuotationHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	inv, err := h.svc.ConvertToInvoice(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *QuotationHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	doc, err := h.docs.QuotationPDF(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	writePDF(w, doc)
}
