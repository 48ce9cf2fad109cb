// Package models holds the persisted entities of the invoicing domain.
package models

// All returns every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&CompanySettings{},
		&DocumentSequence{},
		&Client{},
		&Product{},
		&ProductOption{},
		&ProductOptionValue{},
		&ProductVariant{},
		&Invoice{},
		&InvoiceItem{},
		&Payment{},
		&Quotation{},
		&QuotationItem{},
	}
}
