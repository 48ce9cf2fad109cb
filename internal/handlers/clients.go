package handlers

import (
	"net/http"

	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/sirupsen/logrus"
)

type ClientHandler struct {
	svc *services.ClientService
	log logrus.FieldLogger
}

func NewClientHandler(svc *services.ClientService, log logrus.FieldLogger) *ClientHandler {
	return &ClientHandler{svc: svc, log: log}
}

// List returns a page of clients. ?all=1 returns every client by name,
// for pickers.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "1" {
		clients, err := h.svc.All(r.Context())
		if err != nil {
			httpx.Error(w, r, h.log, err)
			return
		}
		httpx.JSON(w, http.StatusOK, clients)
		return
	}
	page, err := h.svc.List(r.Context(), listing.Parse(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ClientInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	var in services.ClientInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	c, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete removes the client together with its invoices and quotations.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
