// Package validation collects field violations as field -> code pairs.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records code for field unless the field already has a violation.
func (v Violations) Add(field, code string) {
	if _, ok := v[field]; !ok {
		v[field] = code
	}
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if !(val > 0) {
		v.Add(field, "must_be_positive")
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if !(val >= 0) {
		v.Add(field, "must_not_be_negative")
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if !(val >= minVal && val <= maxVal) {
		v.Add(field, "out_of_range")
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())
	vd.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return vd
}

// Email flags a non-empty value that is not an email address.
func Email(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if validate.Var(value, "email") != nil {
		v.Add(field, "invalid_email")
	}
}

// Struct runs `validate` tags on s and records each failure under its JSON
// field name.
func Struct(s any, v Violations) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		v.Add(fieldPath(fe), code(fe))
	}
	return nil
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func code(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "invalid_email"
	case "oneof":
		return "invalid_choice"
	case "gt":
		return "must_be_positive"
	case "gte", "min", "max", "lte", "lt":
		return "out_of_range"
	case "url":
		return "invalid_url"
	}
	return "invalid"
}
