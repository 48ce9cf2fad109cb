package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/diewo77/go-invoicing/internal/validation"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation_failed")

// ValidationError rejects input before anything is persisted.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+"="+code)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}
