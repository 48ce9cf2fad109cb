package db

import (
	"context"
	"fmt"

	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
)

// Seed creates the settings singleton and the numbering sequences. It is
// safe to run repeatedly.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cs models.CompanySettings
		if err := tx.Order("id").Attrs(models.CompanySettings{CompanyName: models.DefaultCompanyName}).
			FirstOrCreate(&cs).Error; err != nil {
			return fmt.Errorf("seed company settings: %w", err)
		}
		for _, name := range []string{models.SequenceInvoice, models.SequenceQuotation} {
			seq := models.DocumentSequence{Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&seq).Error; err != nil {
				return fmt.Errorf("seed sequence %s: %w", name, err)
			}
		}
		return nil
	})
}
