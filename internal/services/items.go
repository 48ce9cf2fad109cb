package services

import (
	"fmt"
	"strings"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/validation"
	"github.com/diewo77/go-invoicing/internal/variants"
)

// ItemInput is one submitted line. Numeric fields are raw strings; blank
// quantity means 1, blank price and tax mean 0.
type ItemInput struct {
	Description string
	Quantity    string
	UnitPrice   string
	TaxRate     string
}

type lineValues struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	TaxRate     float64
}

// parseItems drops rows with a blank description, converts numbers and
// records range violations in v.
func parseItems(in []ItemInput, v validation.Violations) ([]lineValues, error) {
	out := make([]lineValues, 0, len(in))
	for i, it := range in {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			continue
		}
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		qty, err := variants.ParseFloatOr(field("quantity"), it.Quantity, 1)
		if err != nil {
			return nil, err
		}
		price, err := variants.ParseFloatOr(field("unit_price"), it.UnitPrice, 0)
		if err != nil {
			return nil, err
		}
		rate, err := variants.ParseFloatOr(field("tax_rate"), it.TaxRate, 0)
		if err != nil {
			return nil, err
		}
		validation.NonNegativeFloat(field("quantity"), qty, v)
		validation.RangeFloat(field("tax_rate"), rate, 0, 100, v)
		out = append(out, lineValues{Description: desc, Quantity: qty, UnitPrice: price, TaxRate: rate})
	}
	return out, nil
}

func invoiceItems(lines []lineValues) []models.InvoiceItem {
	out := make([]models.InvoiceItem, len(lines))
	for i, l := range lines {
		out[i] = models.InvoiceItem{Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice, TaxRate: l.TaxRate, Position: i}
	}
	return out
}

func quotationItems(lines []lineValues) []models.QuotationItem {
	out := make([]models.QuotationItem, len(lines))
	for i, l := range lines {
		out[i] = models.QuotationItem{Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice, TaxRate: l.TaxRate, Position: i}
	}
	return out
}
