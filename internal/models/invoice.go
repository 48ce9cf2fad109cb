package models

import (
	"time"

	"github.com/diewo77/go-invoicing/internal/finance"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// InvoiceStatuses lists every valid status.
var InvoiceStatuses = []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue}

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	for _, v := range InvoiceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Invoice is a billing document addressed to a client.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceNumber string `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	IssueDate time.Time     `gorm:"not null" json:"issue_date"`
	DueDate   *time.Time    `json:"due_date,omitempty"`
	Status    InvoiceStatus `gorm:"size:20;not null;default:'draft';index" json:"status"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
	Terms string `gorm:"type:text" json:"terms,omitempty"`

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// Totals derives subtotal, tax and total from the loaded items.
func (i *Invoice) Totals() finance.Totals {
	return finance.Sum(i.Items)
}

// Summary derives totals together with the paid amount and balance.
func (i *Invoice) Summary() finance.Summary {
	return finance.Summarize(i.Items, i.Payments)
}

// InvoiceItem is a line on an invoice. TaxRate is a percentage.
type InvoiceItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	Description string  `gorm:"size:500;not null" json:"description"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	TaxRate     float64 `gorm:"not null;default:0" json:"tax_rate"`

	Position int `gorm:"default:0" json:"position"`
}

func (it InvoiceItem) LineQuantity() float64  { return it.Quantity }
func (it InvoiceItem) LineUnitPrice() float64 { return it.UnitPrice }
func (it InvoiceItem) LineTaxRate() float64   { return it.TaxRate }
