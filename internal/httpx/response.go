// Package httpx holds JSON response helpers shared by the handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/diewo77/go-invoicing/internal/logging"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/pdf"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/uploads"
	"github.com/diewo77/go-invoicing/internal/variants"
	"github.com/sirupsen/logrus"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}

// ErrBadRequest marks a malformed request body or parameter.
var ErrBadRequest = errors.New("bad_request")

// Decode reads a single JSON document from the request body into dst.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// Status maps an error onto the response status, code and details.
func Status(err error) (int, string, any) {
	var verr *services.ValidationError
	var cerr *variants.ConversionError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "validation_failed", verr.Violations
	case errors.As(err, &cerr):
		return http.StatusBadRequest, "invalid_number", map[string]string{"field": cerr.Field, "value": cerr.Value}
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request", nil
	case errors.Is(err, uploads.ErrExtensionNotAllowed):
		return http.StatusBadRequest, "extension_not_allowed", map[string]any{"allowed": uploads.AllowedExtensions}
	case errors.Is(err, uploads.ErrInvalidImage):
		return http.StatusBadRequest, "invalid_image", nil
	case errors.Is(err, uploads.ErrInvalidFilename):
		return http.StatusNotFound, "not_found", nil
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found", nil
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "conflict", nil
	case errors.Is(err, pdf.ErrRender):
		return http.StatusInternalServerError, "pdf_generation_failed", nil
	case errors.Is(err, models.ErrVariantDataDecode):
		return http.StatusInternalServerError, "variant_data_corrupt", nil
	default:
		return http.StatusInternalServerError, "internal_error", nil
	}
}

// Error writes err as a JSON error body. Server-side failures are logged
// with the request route; client errors are not.
func Error(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	status, code, details := Status(err)
	if status >= http.StatusInternalServerError {
		if log == nil {
			log = logging.Discard()
		}
		logging.Error(log, "httpx", "Error", code, r.Method+" "+r.URL.Path, err)
	}
	JSONError(w, status, code, details)
}

// Attachment sets the headers for a file download.
func Attachment(w http.ResponseWriter, contentType, filename string) {
	name := strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(filename)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
}
