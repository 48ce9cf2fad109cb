package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func strptr(s string) *string { return &s }

func TestInvoice_Summary(t *testing.T) {
	inv := &Invoice{
		Items: []InvoiceItem{
			{Quantity: 2, UnitPrice: 100, TaxRate: 20},
			{Quantity: 1, UnitPrice: 50, TaxRate: 10},
			{Quantity: 3, UnitPrice: 10, TaxRate: 5.5},
		},
		Payments: []Payment{{Amount: 100}, {Amount: 26.65}},
	}
	s := inv.Summary()
	assert.InDelta(t, 280, s.Subtotal, 1e-9)
	assert.InDelta(t, 46.65, s.Tax, 1e-9)
	assert.InDelta(t, 326.65, s.Total, 1e-9)
	assert.InDelta(t, 126.65, s.Paid, 1e-9)
	assert.InDelta(t, 200, s.Balance, 1e-9)
}

func TestQuotation_Totals(t *testing.T) {
	q := &Quotation{Items: []QuotationItem{{Quantity: 5, UnitPrice: 20, TaxRate: 20}}}
	got := q.Totals()
	assert.InDelta(t, 100, got.Subtotal, 1e-9)
	assert.InDelta(t, 20, got.Tax, 1e-9)
	assert.InDelta(t, 120, got.Total, 1e-9)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, InvoiceStatusOverdue.Valid())
	assert.False(t, InvoiceStatus("final").Valid())
	assert.True(t, QuotationStatusExpired.Valid())
	assert.False(t, QuotationStatus("draft").Valid())
}

func TestClient_AddressLines(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   []string
	}{
		{"full", Client{Address: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "USA"},
			[]string{"1 Main St", "Springfield, IL 62701", "USA"}},
		{"city only", Client{City: "Paris"}, []string{"Paris"}},
		{"zip without city", Client{ZipCode: "75001"}, []string{"75001"}},
		{"empty", Client{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.client.AddressLines())
		})
	}
}

func TestProduct_EffectiveValues(t *testing.T) {
	p := &Product{Price: 10, SKU: strptr("TSHIRT001")}
	assert.Equal(t, 10.0, p.EffectivePrice())
	assert.Equal(t, "TSHIRT001", p.EffectiveSKU())

	p.HasVariants = true
	p.Variants = []ProductVariant{
		{ID: 7, SKU: "TSHIRT001-LAR", Price: 14},
		{ID: 3, SKU: "TSHIRT001-SMA", Price: 12},
	}
	assert.Equal(t, 12.0, p.EffectivePrice())
	assert.Equal(t, "TSHIRT001-SMA", p.EffectiveSKU())

	p.Variants = nil
	assert.Equal(t, 10.0, p.EffectivePrice())
}

func TestProduct_VariantName(t *testing.T) {
	p := &Product{
		Name: "T-Shirt",
		Options: []ProductOption{
			{Name: "Color", DisplayOrder: 1},
			{Name: "Size", DisplayOrder: 0},
		},
	}
	v := &ProductVariant{}
	require.NoError(t, v.SetValues(map[string]string{"Color": "Red", "Size": "Large"}))

	name, err := p.VariantName(v)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirt - Large / Red", name)

	empty := &ProductVariant{}
	name, err = p.VariantName(empty)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirt", name)
}

func TestProductVariant_ValuesDecodeError(t *testing.T) {
	v := &ProductVariant{ID: 9, VariantData: datatypes.JSON(`["not","an","object"]`)}
	_, err := v.Values()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVariantDataDecode))
}

func TestProductVariant_EffectiveTaxRate(t *testing.T) {
	p := &Product{TaxRate: 20}
	v := &ProductVariant{}
	assert.Equal(t, 20.0, v.EffectiveTaxRate(p))
	rate := 5.5
	v.TaxRate = &rate
	assert.Equal(t, 5.5, v.EffectiveTaxRate(p))
}
