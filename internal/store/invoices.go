package store

import (
	"context"

	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
)

func invoiceDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date ASC, id ASC") })
}

// ListInvoices pages invoices newest first, filtered by status and search.
func (s *Store) ListInvoices(ctx context.Context, lq listing.Query) (listing.Page[models.Invoice], error) {
	q := s.conn(ctx).Model(&models.Invoice{}).
		Joins("LEFT JOIN clients ON clients.id = invoices.client_id")
	q = applySearch(q, lq, listing.InvoiceFields)
	if lq.Status != "" && models.InvoiceStatus(lq.Status).Valid() {
		q = q.Where("invoices.status = ?", lq.Status)
	}
	p, err := page[models.Invoice](q, lq, "invoices.created_at DESC, invoices.id DESC", invoiceDetail)
	return p, translate(err, "list invoices")
}

// GetInvoice loads an invoice with client, ordered items and payments.
func (s *Store) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := invoiceDetail(s.conn(ctx)).First(&inv, id).Error; err != nil {
		return nil, translate(err, "get invoice")
	}
	return &inv, nil
}

// CreateInvoice inserts the invoice and its items. An empty InvoiceNumber is
// allocated from the invoice sequence within the same transaction.
func (s *Store) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetClient(ctx, inv.ClientID); err != nil {
			return err
		}
		if inv.InvoiceNumber == "" {
			n, err := tx.NextNumber(ctx, models.SequenceInvoice)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = n
		}
		for i := range inv.Items {
			inv.Items[i].ID = 0
			inv.Items[i].Position = i
		}
		return translate(tx.conn(ctx).Omit("Client", "Payments").Create(inv).Error, "create invoice")
	})
}

// UpdateInvoice rewrites the invoice header and fully replaces its items.
func (s *Store) UpdateInvoice(ctx context.Context, inv *models.Invoice) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetClient(ctx, inv.ClientID); err != nil {
			return err
		}
		db := tx.conn(ctx)
		n, err := updateAll(db, inv)
		if err != nil {
			return translate(err, "update invoice")
		}
		if n == 0 {
			return translate(gorm.ErrRecordNotFound, "update invoice")
		}
		if err := db.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return translate(err, "delete invoice items")
		}
		for i := range inv.Items {
			inv.Items[i].ID = 0
			inv.Items[i].InvoiceID = inv.ID
			inv.Items[i].Position = i
		}
		if len(inv.Items) > 0 {
			if err := db.Create(&inv.Items).Error; err != nil {
				return translate(err, "create invoice items")
			}
		}
		return nil
	})
}

// SetInvoiceStatus updates only the status column.
func (s *Store) SetInvoiceStatus(ctx context.Context, id uint, status models.InvoiceStatus) error {
	res := s.conn(ctx).Model(&models.Invoice{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "set invoice status")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "set invoice status")
	}
	return nil
}

// DeleteInvoice removes an invoice with its items and payments.
func (s *Store) DeleteInvoice(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		db := tx.conn(ctx)
		if err := db.Select("id").First(&models.Invoice{}, id).Error; err != nil {
			return translate(err, "delete invoice")
		}
		if err := db.Where("invoice_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return translate(err, "delete invoice payments")
		}
		if err := db.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return translate(err, "delete invoice items")
		}
		return translate(db.Delete(&models.Invoice{}, id).Error, "delete invoice")
	})
}
