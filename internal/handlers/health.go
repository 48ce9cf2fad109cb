package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/logging"
	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log logrus.FieldLogger
}

func NewHealthHandler(db Pinger, log logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health reports that the process is up.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Healthz also checks the database.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		logging.Warn(h.log, "handlers", "Healthz", "database ping", nil, err)
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}
