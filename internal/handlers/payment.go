package handlers

import (
	"net/http"

	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/sirupsen/logrus"
)

type paymentRequest struct {
	Amount      FlexNumber `json:"amount"`
	PaymentDate Date       `json:"payment_date"`
	Method      string     `json:"payment_method"`
	Notes       string     `json:"notes"`
}

type PaymentHandler struct {
	svc *services.PaymentService
	log logrus.FieldLogger
}

func NewPaymentHandler(svc *services.PaymentService, log logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{svc: svc, log: log}
}

// List returns the payments of the invoice in the path.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	payments, err := h.svc.List(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

// Create records a payment and responds with the invoice status it led to.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	var req paymentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	res, err := h.svc.Record(r.Context(), id, services.PaymentInput{
		Amount:      string(req.Amount),
		PaymentDate: req.PaymentDate.Time,
		Method:      req.Method,
		Notes:       req.Notes,
	})
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	status, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"invoice_status": string(status)})
}
