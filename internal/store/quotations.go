package store

import (
	"context"

	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
)

func quotationDetail(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") })
}

// ListQuotations pages quotations newest first, filtered by status and search.
func (s *Store) ListQuotations(ctx context.Context, lq listing.Query) (listing.Page[models.Quotation], error) {
	q := s.conn(ctx).Model(&models.Quotation{}).
		Joins("LEFT JOIN clients ON clients.id = quotations.client_id")
	q = applySearch(q, lq, listing.QuotationFields)
	if lq.Status != "" && models.QuotationStatus(lq.Status).Valid() {
		q = q.Where("quotations.status = ?", lq.Status)
	}
	p, err := page[models.Quotation](q, lq, "quotations.created_at DESC, quotations.id DESC", quotationDetail)
	return p, translate(err, "list quotations")
}

func (s *Store) GetQuotation(ctx context.Context, id uint) (*models.Quotation, error) {
	var q models.Quotation
	if err := quotationDetail(s.conn(ctx)).First(&q, id).Error; err != nil {
		return nil, translate(err, "get quotation")
	}
	return &q, nil
}

// CreateQuotation inserts the quotation and its items, allocating a number
// when none is set.
func (s *Store) CreateQuotation(ctx context.Context, q *models.Quotation) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetClient(ctx, q.ClientID); err != nil {
			return err
		}
		if q.QuotationNumber == "" {
			n, err := tx.NextNumber(ctx, models.SequenceQuotation)
			if err != nil {
				return err
			}
			q.QuotationNumber = n
		}
		for i := range q.Items {
			q.Items[i].ID = 0
			q.Items[i].Position = i
		}
		return translate(tx.conn(ctx).Omit("Client").Create(q).Error, "create quotation")
	})
}

// UpdateQuotation rewrites the header and fully replaces the items.
func (s *Store) UpdateQuotation(ctx context.Context, q *models.Quotation) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetClient(ctx, q.ClientID); err != nil {
			return err
		}
		db := tx.conn(ctx)
		n, err := updateAll(db, q)
		if err != nil {
			return translate(err, "update quotation")
		}
		if n == 0 {
			return translate(gorm.ErrRecordNotFound, "update quotation")
		}
		if err := db.Where("quotation_id = ?", q.ID).Delete(&models.QuotationItem{}).Error; err != nil {
			return translate(err, "delete quotation items")
		}
		for i := range q.Items {
			q.Items[i].ID = 0
			q.Items[i].QuotationID = q.ID
			q.Items[i].Position = i
		}
		if len(q.Items) > 0 {
			if err := db.Create(&q.Items).Error; err != nil {
				return translate(err, "create quotation items")
			}
		}
		return nil
	})
}

func (s *Store) SetQuotationStatus(ctx context.Context, id uint, status models.QuotationStatus) error {
	res := s.conn(ctx).Model(&models.Quotation{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "set quotation status")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "set quotation status")
	}
	return nil
}

// DeleteQuotation removes a quotation with its items.
func (s *Store) DeleteQuotation(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		db := tx.conn(ctx)
		if err := db.Select("id").First(&models.Quotation{}, id).Error; err != nil {
			return translate(err, "delete quotation")
		}
		if err := db.Where("quotation_id = ?", id).Delete(&models.QuotationItem{}).Error; err != nil {
			return translate(err, "delete quotation items")
		}
		return translate(db.Delete(&models.Quotation{}, id).Error, "delete quotation")
	})
}
