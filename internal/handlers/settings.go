package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// MaxLogoBytes caps logo uploads.
const MaxLogoBytes = 5 << 20

type SettingsHandler struct {
	svc *services.SettingsService
	log logrus.FieldLogger
}

func NewSettingsHandler(svc *services.SettingsService, log logrus.FieldLogger) *SettingsHandler {
	return &SettingsHandler{svc: svc, log: log}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.Get(r.Context())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cs)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in services.SettingsInput
	if err := httpx.Decode(r, &in); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	cs, err := h.svc.Update(r.Context(), in)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cs)
}

// UploadLogo takes a multipart form with the image in the "logo" field.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxLogoBytes)
	if err := r.ParseMultipartForm(MaxLogoBytes); err != nil {
		httpx.Error(w, r, h.log, fmt.Errorf("%w: %v", httpx.ErrBadRequest, err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()
	file, header, err := r.FormFile("logo")
	if err != nil {
		v := validation.Violations{}
		v.Add("logo", "required")
		httpx.Error(w, r, h.log, &services.ValidationError{Violations: v})
		return
	}
	defer file.Close()

	cs, err := h.svc.ReplaceLogo(r.Context(), header.Filename, file)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cs)
}

// Logo serves a stored logo by filename.
func (h *SettingsHandler) Logo(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.LogoPath(chi.URLParam(r, "filename"))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("logo: %w", store.ErrNotFound)
		}
		httpx.Error(w, r, h.log, err)
		return
	}
	http.ServeFile(w, r, path)
}
