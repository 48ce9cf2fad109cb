package store

import (
	"context"
	"errors"

	"github.com/diewo77/go-invoicing/internal/models"
	"gorm.io/gorm"
)

// Settings returns the company settings row, creating it with defaults on
// first access. Each call reads fresh state.
func (s *Store) Settings(ctx context.Context) (*models.CompanySettings, error) {
	var cs models.CompanySettings
	err := s.conn(ctx).Order("id ASC").First(&cs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cs = models.CompanySettings{CompanyName: models.DefaultCompanyName}
		if err := s.conn(ctx).Create(&cs).Error; err != nil {
			return nil, translate(err, "create settings")
		}
		return &cs, nil
	}
	if err != nil {
		return nil, translate(err, "get settings")
	}
	return &cs, nil
}

func (s *Store) UpdateSettings(ctx context.Context, cs *models.CompanySettings) error {
	n, err := updateAll(s.conn(ctx), cs)
	if err != nil {
		return translate(err, "update settings")
	}
	if n == 0 {
		return translate(gorm.ErrRecordNotFound, "update settings")
	}
	return nil
}
