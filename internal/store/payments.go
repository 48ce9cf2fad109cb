package store

import (
	"context"

	"github.com/diewo77/go-invoicing/internal/models"
)

// ListPayments returns an invoice's payments, oldest first.
func (s *Store) ListPayments(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
	out := []models.Payment{}
	err := s.conn(ctx).Where("invoice_id = ?", invoiceID).Order("payment_date ASC, id ASC").Find(&out).Error
	return out, translate(err, "list payments")
}

func (s *Store) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := s.conn(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "get payment")
	}
	return &p, nil
}

func (s *Store) CreatePayment(ctx context.Context, p *models.Payment) error {
	return translate(s.conn(ctx).Create(p).Error, "create payment")
}

func (s *Store) DeletePayment(ctx context.Context, id uint) error {
	return translate(s.conn(ctx).Delete(&models.Payment{}, id).Error, "delete payment")
}
