package store

import (
	"context"
	"strings"

	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
)

// Product list status filter values.
const (
	ProductStatusAll      = "all"
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// SearchLimit caps the product search endpoint.
const SearchLimit = 10

func orderedVariants(db *gorm.DB) *gorm.DB {
	return db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC, id ASC")
	}).Preload("Options.Values", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC, id ASC")
	}).Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// ListProducts pages products, filtered by category and active status.
func (s *Store) ListProducts(ctx context.Context, lq listing.Query) (listing.Page[models.Product], error) {
	q := applySearch(s.conn(ctx).Model(&models.Product{}), lq, listing.ProductFields)
	if lq.Category != "" {
		q = q.Where("products.category = ?", lq.Category)
	}
	switch lq.Status {
	case ProductStatusActive:
		q = q.Where("products.is_active = ?", true)
	case ProductStatusInactive:
		q = q.Where("products.is_active = ?", false)
	}
	p, err := page[models.Product](q, lq, "products.name ASC, products.id ASC", orderedVariants)
	return p, translate(err, "list products")
}

// ActiveProducts returns active products by name with their variants.
func (s *Store) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := orderedVariants(s.conn(ctx)).Where("is_active = ?", true).Order("name ASC").Find(&out).Error
	return out, translate(err, "active products")
}

// SearchProducts matches active products by name, description or SKU.
func (s *Store) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var out []models.Product
	err := orderedVariants(s.conn(ctx)).
		Where("is_active = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ?", like, like, like).
		Order("name ASC").
		Limit(SearchLimit).
		Find(&out).Error
	return out, translate(err, "search products")
}

// Categories returns the distinct non-empty product categories.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := s.conn(ctx).Model(&models.Product{}).
		Where("category IS NOT NULL AND category <> ''").
		Distinct().Order("category ASC").Pluck("category", &out).Error
	return out, translate(err, "product categories")
}

// GetProduct loads a product with options, values and variants in order.
func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := orderedVariants(s.conn(ctx)).First(&p, id).Error; err != nil {
		return nil, translate(err, "get product")
	}
	return &p, nil
}

// CreateProduct inserts the product row only; variant sets go through
// ReplaceVariantSet.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(s.conn(ctx).Omit("Options", "Variants").Create(p).Error, "create product")
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	n, err := updateAll(s.conn(ctx), p)
	if err != nil {
		return translate(err, "update product")
	}
	if n == 0 {
		return translate(gorm.ErrRecordNotFound, "update product")
	}
	return nil
}

// DeleteProduct removes a product with its options, values and variants.
func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.GetProduct(ctx, id); err != nil {
			return err
		}
		if err := tx.deleteVariantSet(ctx, id); err != nil {
			return err
		}
		return translate(tx.conn(ctx).Delete(&models.Product{}, id).Error, "delete product")
	})
}

// ProductSKUExists reports whether any product uses sku.
func (s *Store) ProductSKUExists(ctx context.Context, sku string) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Product{}).Where("sku = ?", sku).Count(&n).Error
	return n > 0, translate(err, "product sku lookup")
}

// VariantSKUExists reports whether any variant uses sku.
func (s *Store) VariantSKUExists(ctx context.Context, sku string) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.ProductVariant{}).Where("sku = ?", sku).Count(&n).Error
	return n > 0, translate(err, "variant sku lookup")
}

func (s *Store) deleteVariantSet(ctx context.Context, productID uint) error {
	db := s.conn(ctx)
	options := db.Model(&models.ProductOption{}).Select("id").Where("product_id = ?", productID)
	if err := db.Where("option_id IN (?)", options).Delete(&models.ProductOptionValue{}).Error; err != nil {
		return translate(err, "delete option values")
	}
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductOption{}).Error; err != nil {
		return translate(err, "delete options")
	}
	if err := db.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return translate(err, "delete variants")
	}
	return nil
}

// VariantPlanner produces the new variant rows once the previous set has
// been removed. exists reports SKUs still taken by other products' variants.
type VariantPlanner func(ctx context.Context, exists func(context.Context, string) (bool, error)) ([]models.ProductVariant, error)

// ReplaceVariantSet deletes every option, option value and variant of the
// product and inserts the given options (with values) and planned variants,
// atomically. A nil plan leaves the product with options only.
func (s *Store) ReplaceVariantSet(ctx context.Context, productID uint, options []models.ProductOption, plan VariantPlanner) ([]models.ProductVariant, error) {
	var created []models.ProductVariant
	err := s.WithTx(ctx, func(tx *Store) error {
		if err := tx.deleteVariantSet(ctx, productID); err != nil {
			return err
		}
		db := tx.conn(ctx)
		for i := range options {
			options[i].ID = 0
			options[i].ProductID = productID
			for j := range options[i].Values {
				options[i].Values[j].ID = 0
				options[i].Values[j].OptionID = 0
			}
		}
		if len(options) > 0 {
			if err := db.Create(&options).Error; err != nil {
				return translate(err, "create options")
			}
		}
		if plan == nil {
			return nil
		}
		rows, err := plan(ctx, tx.VariantSKUExists)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].ProductID = productID
		}
		if len(rows) > 0 {
			if err := db.Create(&rows).Error; err != nil {
				return translate(err, "create variants")
			}
		}
		created = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
