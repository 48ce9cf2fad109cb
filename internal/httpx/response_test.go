package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-invoicing/internal/logging"
	"github.com/diewo77/go-invoicing/internal/pdf"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/uploads"
	"github.com/diewo77/go-invoicing/internal/validation"
	"github.com/diewo77/go-invoicing/internal/variants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]int{"id": 7})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":7}`, w.Body.String())

	w = httptest.NewRecorder()
	JSON(w, http.StatusOK, nil)
	assert.Equal(t, "null", w.Body.String())
}

func TestStatus(t *testing.T) {
	_, convErr := variants.ParseFloat("price", "abc")
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &services.ValidationError{Violations: validation.Violations{"name": "required"}}, 400, "validation_failed"},
		{"conversion", convErr, 400, "invalid_number"},
		{"bad body", fmt.Errorf("%w: eof", ErrBadRequest), 400, "bad_request"},
		{"extension", fmt.Errorf("%w: x.exe", uploads.ErrExtensionNotAllowed), 400, "extension_not_allowed"},
		{"image", uploads.ErrInvalidImage, 400, "invalid_image"},
		{"not found", fmt.Errorf("invoice 3: %w", store.ErrNotFound), 404, "not_found"},
		{"conflict", store.ErrConflict, 409, "conflict"},
		{"pdf", fmt.Errorf("%w: boom", pdf.ErrRender), 500, "pdf_generation_failed"},
		{"other", errors.New("disk on fire"), 500, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := Status(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestErrorBodyAndLogging(t *testing.T) {
	var logs bytes.Buffer
	log := logging.NewWithOutput(&logs, "json", "info")
	r := httptest.NewRequest(http.MethodGet, "/api/invoices/1/pdf", nil)

	w := httptest.NewRecorder()
	Error(w, r, log, &services.ValidationError{Violations: validation.Violations{"email": "invalid_email"}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Error)
	assert.Equal(t, "invalid_email", body.Details["email"])
	assert.Empty(t, logs.String(), "client errors are not logged")

	w = httptest.NewRecorder()
	Error(w, r, log, fmt.Errorf("%w: boom", pdf.ErrRender))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logs.String(), "/api/invoices/1/pdf")

	w = httptest.NewRecorder()
	Error(w, r, nil, errors.New("x"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDecode(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme"}`))
	require.NoError(t, Decode(r, &dst))
	assert.Equal(t, "Acme", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.True(t, errors.Is(Decode(r, &dst), ErrBadRequest))
}

func TestAttachment(t *testing.T) {
	w := httptest.NewRecorder()
	Attachment(w, "application/pdf", `INV-00001".pdf`)
	assert.Equal(t, `attachment; filename="INV-00001.pdf"`, w.Header().Get("Content-Disposition"))
}
