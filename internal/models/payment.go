package models

import "time"

// PaymentMethods are the accepted payment methods.
var PaymentMethods = []string{"cash", "check", "bank_transfer", "credit_card", "paypal", "other"}

// Payment settles part of an invoice balance.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	InvoiceID   uint      `gorm:"index;not null" json:"invoice_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	PaymentDate time.Time `gorm:"not null" json:"payment_date"`
	Method      string    `gorm:"size:50" json:"payment_method,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
}

func (p Payment) PaymentAmount() float64 { return p.Amount }
