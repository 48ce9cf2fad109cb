package handlers

import (
	"net/http"

	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/sirupsen/logrus"
)

type invoiceRequest struct {
	ClientID  uint          `json:"client_id"`
	IssueDate Date          `json:"issue_date"`
	DueDate   Date          `json:"due_date"`
	Status    string        `json:"status"`
	Notes     string        `json:"notes"`
	Terms     string        `json:"terms"`
	Items     []itemRequest `json:"items"`
}

func (req invoiceRequest) input() services.InvoiceInput {
	return services.InvoiceInput{
		ClientID:  req.ClientID,
		IssueDate: req.IssueDate.Time,
		DueDate:   req.DueDate.Ptr(),
		Status:    req.Status,
		Notes:     req.Notes,
		Terms:     req.Terms,
		Items:     itemInputs(req.Items),
	}
}

type InvoiceHandler struct {
	svc  *services.InvoiceService
	docs *services.DocumentService
	log  logrus.FieldLogger
}

func NewInvoiceHandler(svc *services.InvoiceService, docs *services.DocumentService, log logrus.FieldLogger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, docs: docs, log: log}
}

// List supports ?search, ?search_by (invoice_number, client_name,
// invoice_id) and ?status.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), listing.Parse(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Create always stores a draft; any status in the body is ignored.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	inv, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	var req invoiceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	inv, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	doc, err := h.docs.InvoicePDF(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	writePDF(w, doc)
}

func writePDF(w http.ResponseWriter, doc *services.Rendered) {
	httpx.Attachment(w, "application/pdf", doc.Filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}
