package services

import (
	"context"
	"strings"
	"time"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/validation"
	"github.com/diewo77/go-invoicing/internal/variants"
)

// PaymentInput records money received against an invoice.
type PaymentInput struct {
	Amount      string
	PaymentDate time.Time
	Method      string
	Notes       string
}

// PaymentResult is the stored payment and the invoice status it led to.
type PaymentResult struct {
	Payment       *models.Payment      `json:"payment"`
	InvoiceStatus models.InvoiceStatus `json:"invoice_status"`
}

// PaymentService records and removes payments, keeping invoice status in
// step with the balance.
type PaymentService struct {
	Store *store.Store
	Now   func() time.Time
}

func NewPaymentService(st *store.Store) *PaymentService {
	return &PaymentService{Store: st, Now: time.Now}
}

// List returns an invoice's payments.
func (s *PaymentService) List(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
	if _, err := s.Store.GetInvoice(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.Store.ListPayments(ctx, invoiceID)
}

// Record stores a payment and updates the invoice status in one
// transaction. The status decision compares the amount against the balance
// read before the payment is inserted.
func (s *PaymentService) Record(ctx context.Context, invoiceID uint, in PaymentInput) (*PaymentResult, error) {
	amount, err := variants.ParseFloat("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.PositiveFloat("amount", amount, v)
	if err := invalid(v); err != nil {
		return nil, err
	}
	date := in.PaymentDate
	if date.IsZero() {
		date = s.Now()
	}

	var res PaymentResult
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		inv, err := tx.GetInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		balanceBefore := inv.Summary().Balance
		p := &models.Payment{
			InvoiceID:   invoiceID,
			Amount:      amount,
			PaymentDate: date,
			Method:      strings.TrimSpace(in.Method),
			Notes:       in.Notes,
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}
		status := StatusAfterPayment(inv.Status, amount, balanceBefore)
		if err := tx.SetInvoiceStatus(ctx, invoiceID, status); err != nil {
			return err
		}
		res = PaymentResult{Payment: p, InvoiceStatus: status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes a payment and recomputes the invoice status from the
// remaining payments.
func (s *PaymentService) Delete(ctx context.Context, paymentID uint) (models.InvoiceStatus, error) {
	var status models.InvoiceStatus
	err := s.Store.WithTx(ctx, func(tx *store.Store) error {
		p, err := tx.GetPayment(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := tx.DeletePayment(ctx, p.ID); err != nil {
			return err
		}
		inv, err := tx.GetInvoice(ctx, p.InvoiceID)
		if err != nil {
			return err
		}
		status = StatusAfterPaymentRemoval(inv.Summary().Balance)
		return tx.SetInvoiceStatus(ctx, inv.ID, status)
	})
	return status, err
}
