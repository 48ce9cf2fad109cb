package store

import (
	"context"

	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
)

func (s *Store) ListClients(ctx context.Context, lq listing.Query) (listing.Page[models.Client], error) {
	q := applySearch(s.conn(ctx).Model(&models.Client{}), lq, listing.ClientFields)
	p, err := page[models.Client](q, lq, "clients.name ASC, clients.id ASC", nil)
	return p, translate(err, "list clients")
}

// AllClients returns every client by name, for selection lists.
func (s *Store) AllClients(ctx context.Context) ([]models.Client, error) {
	var out []models.Client
	err := s.conn(ctx).Order("name ASC").Find(&out).Error
	return out, translate(err, "all clients")
}

func (s *Store) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := s.conn(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "get client")
	}
	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	return translate(s.conn(ctx).Omit("Invoices", "Quotations").Create(c).Error, "create client")
}

func (s *Store) UpdateClient(ctx context.Context, c *models.Client) error {
	n, err := updateAll(s.conn(ctx), c)
	if err != nil {
		return translate(err, "update client")
	}
	if n == 0 {
		return translate(gorm.ErrRecordNotFound, "update client")
	}
	return nil
}

// DeleteClient removes the client with all its invoices, quotations, items
// and payments.
func (s *Store) DeleteClient(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetClient(ctx, id); err != nil {
			return err
		}
		db := tx.conn(ctx)
		invoices := db.Model(&models.Invoice{}).Select("id").Where("client_id = ?", id)
		if err := db.Where("invoice_id IN (?)", invoices).Delete(&models.Payment{}).Error; err != nil {
			return translate(err, "delete client payments")
		}
		if err := db.Where("invoice_id IN (?)", invoices).Delete(&models.InvoiceItem{}).Error; err != nil {
			return translate(err, "delete client invoice items")
		}
		quotations := db.Model(&models.Quotation{}).Select("id").Where("client_id = ?", id)
		if err := db.Where("quotation_id IN (?)", quotations).Delete(&models.QuotationItem{}).Error; err != nil {
			return translate(err, "delete client quotation items")
		}
		if err := db.Where("client_id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return translate(err, "delete client invoices")
		}
		if err := db.Where("client_id = ?", id).Delete(&models.Quotation{}).Error; err != nil {
			return translate(err, "delete client quotations")
		}
		return translate(db.Delete(&models.Client{}, id).Error, "delete client")
	})
}
