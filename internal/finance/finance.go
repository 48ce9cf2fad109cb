// Package finance derives line, document and balance amounts from stored
// quantities, prices, tax rates and payments.
//
// Every function here is pure. Amounts are summed from unrounded per-line
// values; rounding belongs to presentation (see Round and Format).
package finance

// Line is a priced line item. TaxRate is a percentage (20 means 20%).
type Line interface {
	LineQuantity() float64
	LineUnitPrice() float64
	LineTaxRate() float64
}

// Amount is anything that settles part of a balance.
type Amount interface {
	PaymentAmount() float64
}

// Item is a standalone Line.
type Item struct {
	Quantity  float64
	UnitPrice float64
	TaxRate   float64
}

func (i Item) LineQuantity() float64  { return i.Quantity }
func (i Item) LineUnitPrice() float64 { return i.UnitPrice }
func (i Item) LineTaxRate() float64   { return i.TaxRate }

// Subtotal is quantity * unit price.
func Subtotal(l Line) float64 {
	return l.LineQuantity() * l.LineUnitPrice()
}

// Tax is the subtotal times the tax rate percentage.
func Tax(l Line) float64 {
	return Subtotal(l) * (l.LineTaxRate() / 100)
}

// Total is subtotal plus tax.
func Total(l Line) float64 {
	return Subtotal(l) + Tax(l)
}

// Totals aggregates a collection of lines.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Sum totals lines. An empty collection yields zero for every field.
func Sum[L Line](lines []L) Totals {
	var t Totals
	for _, l := range lines {
		t.Subtotal += Subtotal(l)
		t.Tax += Tax(l)
		t.Total += Total(l)
	}
	return t
}

// DocumentTotal is the sum of every line total.
func DocumentTotal[L Line](lines []L) float64 {
	return Sum(lines).Total
}

// PaidAmount sums payment amounts.
func PaidAmount[P Amount](payments []P) float64 {
	var paid float64
	for _, p := range payments {
		paid += p.PaymentAmount()
	}
	return paid
}

// Balance is total minus paid. It is not clamped: overpayment yields a
// negative balance.
func Balance(total, paid float64) float64 {
	return total - paid
}

// Summary is the full derived state of an invoice.
type Summary struct {
	Totals
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

// Summarize derives totals, paid amount and balance in one pass over each
// collection.
func Summarize[L Line, P Amount](lines []L, payments []P) Summary {
	t := Sum(lines)
	paid := PaidAmount(payments)
	return Summary{Totals: t, Paid: paid, Balance: Balance(t.Total, paid)}
}
