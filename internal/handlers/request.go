package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/go-chi/chi/v5"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// FlexNumber accepts a JSON number or string and keeps the raw text, so
// that a malformed value reaches the services as a conversion error
// instead of failing the whole body.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FlexNumber(s)
	default:
		var num json.Number
		if err := json.Unmarshal(b, &num); err != nil {
			return err
		}
		*n = FlexNumber(num.String())
	}
	return nil
}

// Date is a calendar date, "2006-01-02" or RFC 3339. Null and "" leave it
// zero.
type Date struct{ time.Time }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
	}
	d.Time = t
	return nil
}

// Ptr returns nil for a zero date.
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// ValueList accepts option values as a comma-separated string or as an
// array of strings, and keeps the comma-joined form.
type ValueList string

func (l *ValueList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var vals []string
		if err := json.Unmarshal(b, &vals); err != nil {
			return err
		}
		*l = ValueList(strings.Join(vals, ","))
		return nil
	}
	var s string
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = ValueList(s)
	return nil
}

type itemRequest struct {
	Description string     `json:"description"`
	Quantity    FlexNumber `json:"quantity"`
	UnitPrice   FlexNumber `json:"unit_price"`
	TaxRate     FlexNumber `json:"tax_rate"`
}

func itemInputs(items []itemRequest) []services.ItemInput {
	out := make([]services.ItemInput, len(items))
	for i, it := range items {
		out[i] = services.ItemInput{
			Description: it.Description,
			Quantity:    string(it.Quantity),
			UnitPrice:   string(it.UnitPrice),
			TaxRate:     string(it.TaxRate),
		}
	}
	return out
}

// idParam reads a positive numeric path parameter. Anything else cannot
// name a stored record and is reported as not found.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", store.ErrNotFound, name, raw)
	}
	return uint(id), nil
}
