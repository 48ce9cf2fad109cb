// Package variants expands product option axes into concrete variant
// coordinates and derives product and variant SKUs.
package variants

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrValueConversion reports a numeric field that could not be parsed.
var ErrValueConversion = errors.New("value_conversion")

// ConversionError names the field and raw value that failed to parse.
type ConversionError struct {
	Field string
	Value string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: cannot convert %q to a number", e.Field, e.Value)
}

func (e *ConversionError) Unwrap() error { return ErrValueConversion }

// ParseFloat parses a required numeric field. NaN and infinities are
// rejected like any other non-number.
func ParseFloat(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ConversionError{Field: field, Value: raw}
	}
	return v, nil
}

// ParseFloatOr parses an optional numeric field, returning def when raw is
// blank. Non-blank garbage is still an error.
func ParseFloatOr(field, raw string, def float64) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	return ParseFloat(field, raw)
}

// ParseValues splits a raw comma-separated list into trimmed, non-empty,
// de-duplicated values in first-seen order.
func ParseValues(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
