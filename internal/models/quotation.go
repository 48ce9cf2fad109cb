package models

import (
	"time"

	"github.com/diewo77/go-invoicing/internal/finance"
)

// QuotationStatus is the lifecycle state of a quotation.
type QuotationStatus string

const (
	QuotationStatusPending  QuotationStatus = "pending"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
	QuotationStatusExpired  QuotationStatus = "expired"
)

// QuotationStatuses lists every valid status.
var QuotationStatuses = []QuotationStatus{QuotationStatusPending, QuotationStatusAccepted, QuotationStatusRejected, QuotationStatusExpired}

// Valid reports whether s is a known status.
func (s QuotationStatus) Valid() bool {
	for _, v := range QuotationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Quotation is a priced offer that may be converted into an invoice.
type Quotation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	QuotationNumber string `gorm:"size:50;uniqueIndex;not null" json:"quotation_number"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	IssueDate  time.Time       `gorm:"not null" json:"issue_date"`
	ValidUntil *time.Time      `json:"valid_until,omitempty"`
	Status     QuotationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
	Terms string `gorm:"type:text" json:"terms,omitempty"`

	Items []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// Totals derives subtotal, tax and total from the loaded items.
func (q *Quotation) Totals() finance.Totals {
	return finance.Sum(q.Items)
}

// QuotationItem is a line on a quotation. TaxRate is a percentage.
type QuotationItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	QuotationID uint `gorm:"index;not null" json:"quotation_id"`

	Description string  `gorm:"size:500;not null" json:"description"`
	Quantity    float64 `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unit_price"`
	TaxRate     float64 `gorm:"not null;default:0" json:"tax_rate"`

	Position int `gorm:"default:0" json:"position"`
}

func (it QuotationItem) LineQuantity() float64  { return it.Quantity }
func (it QuotationItem) LineUnitPrice() float64 { return it.UnitPrice }
func (it QuotationItem) LineTaxRate() float64   { return it.TaxRate }
