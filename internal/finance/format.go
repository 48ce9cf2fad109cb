package finance

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimals shown for money.
const CurrencyPlaces = 2

// Round rounds half away from zero to the given number of places. Use it
// only when presenting a value, never before summing.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Format renders an amount with CurrencyPlaces decimals.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(CurrencyPlaces)
}

// FormatRate renders a tax percentage with one decimal.
func FormatRate(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
