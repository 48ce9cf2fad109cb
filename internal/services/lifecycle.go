package services

import (
	"time"

	"github.com/diewo77/go-invoicing/internal/models"
)

// ConversionDueDays is the payment window of an invoice created from a
// quotation.
const ConversionDueDays = 30

// StatusAfterPayment decides an invoice's status when a payment is recorded.
// balanceBefore is the balance before the payment is added: a payment that
// covers it settles the invoice, otherwise the invoice counts as sent unless
// it was explicitly marked overdue.
func StatusAfterPayment(current models.InvoiceStatus, amount, balanceBefore float64) models.InvoiceStatus {
	if amount >= balanceBefore {
		return models.InvoiceStatusPaid
	}
	if current == models.InvoiceStatusOverdue {
		return current
	}
	return models.InvoiceStatusSent
}

// StatusAfterPaymentRemoval decides the status from the balance left once a
// payment is deleted. A zero balance reads as paid even when no payments
// remain.
func StatusAfterPaymentRemoval(balance float64) models.InvoiceStatus {
	if balance > 0 {
		return models.InvoiceStatusSent
	}
	return models.InvoiceStatusPaid
}

// InvoiceFromQuotation copies a quotation into a new draft invoice issued at
// now. Items are copied by value. The invoice number is left empty for the
// store to allocate.
func InvoiceFromQuotation(q *models.Quotation, now time.Time) *models.Invoice {
	due := now.AddDate(0, 0, ConversionDueDays)
	inv := &models.Invoice{
		ClientID:  q.ClientID,
		IssueDate: now,
		DueDate:   &due,
		Status:    models.InvoiceStatusDraft,
		Notes:     q.Notes,
		Terms:     q.Terms,
		Items:     make([]models.InvoiceItem, 0, len(q.Items)),
	}
	for _, it := range q.Items {
		inv.Items = append(inv.Items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	return inv
}
