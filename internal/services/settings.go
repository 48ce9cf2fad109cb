package services

import (
	"context"
	"io"

	"github.com/diewo77/go-invoicing/internal/logging"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/uploads"
	"github.com/diewo77/go-invoicing/internal/validation"
	"github.com/sirupsen/logrus"
)

// SettingsInput carries the editable company settings.
type SettingsInput struct {
	CompanyName         string `json:"company_name"`
	CompanyAddress      string `json:"company_address"`
	CompanyCity         string `json:"company_city"`
	CompanyState        string `json:"company_state"`
	CompanyZip          string `json:"company_zip"`
	CompanyCountry      string `json:"company_country"`
	CompanyPhone        string `json:"company_phone"`
	CompanyEmail        string `json:"company_email" validate:"omitempty,email"`
	CompanyWebsite      string `json:"company_website"`
	CompanyTaxID        string `json:"company_tax_id"`
	BankName            string `json:"bank_name"`
	BankAccountNumber   string `json:"bank_account_number"`
	BankRoutingNumber   string `json:"bank_routing_number"`
	BankSwiftCode       string `json:"bank_swift_code"`
	PaymentInstructions string `json:"payment_instructions"`
	PaymentMethods      string `json:"payment_methods"`
}

// SettingsService reads and updates the singleton company settings.
type SettingsService struct {
	Store *store.Store
	Logos *uploads.LogoStore
	Log   logrus.FieldLogger
}

func NewSettingsService(st *store.Store, logos *uploads.LogoStore, log logrus.FieldLogger) *SettingsService {
	if log == nil {
		log = logging.Discard()
	}
	return &SettingsService{Store: st, Logos: logos, Log: log}
}

// Get returns current settings, creating the row on first use.
func (s *SettingsService) Get(ctx context.Context) (*models.CompanySettings, error) {
	return s.Store.Settings(ctx)
}

// Update overwrites every editable field. The logo is untouched.
func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*models.CompanySettings, error) {
	v := validation.Violations{}
	if err := validation.Struct(in, v); err != nil {
		return nil, err
	}
	if err := invalid(v); err != nil {
		return nil, err
	}
	var out *models.CompanySettings
	err := s.Store.WithTx(ctx, func(tx *store.Store) error {
		cs, err := tx.Settings(ctx)
		if err != nil {
			return err
		}
		cs.CompanyName = in.CompanyName
		if cs.CompanyName == "" {
			cs.CompanyName = models.DefaultCompanyName
		}
		cs.CompanyAddress = in.CompanyAddress
		cs.CompanyCity = in.CompanyCity
		cs.CompanyState = in.CompanyState
		cs.CompanyZip = in.CompanyZip
		cs.CompanyCountry = in.CompanyCountry
		cs.CompanyPhone = in.CompanyPhone
		cs.CompanyEmail = in.CompanyEmail
		cs.CompanyWebsite = in.CompanyWebsite
		cs.CompanyTaxID = in.CompanyTaxID
		cs.BankName = in.BankName
		cs.BankAccountNumber = in.BankAccountNumber
		cs.BankRoutingNumber = in.BankRoutingNumber
		cs.BankSwiftCode = in.BankSwiftCode
		cs.PaymentInstructions = in.PaymentInstructions
		cs.PaymentMethods = in.PaymentMethods
		out = cs
		return tx.UpdateSettings(ctx, cs)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceLogo stores a new logo file and points the settings at it. The
// previous file is removed afterwards; failing to remove it is logged and
// otherwise ignored. If the settings cannot be saved the new file is
// removed again.
func (s *SettingsService) ReplaceLogo(ctx context.Context, filename string, r io.Reader) (*models.CompanySettings, error) {
	saved, err := s.Logos.Save(filename, r)
	if err != nil {
		return nil, err
	}
	var (
		out     *models.CompanySettings
		oldPath string
	)
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		cs, err := tx.Settings(ctx)
		if err != nil {
			return err
		}
		oldPath = cs.LogoPath
		cs.LogoFilename = saved.Filename
		cs.LogoPath = saved.Path
		out = cs
		return tx.UpdateSettings(ctx, cs)
	})
	if err != nil {
		if rmErr := s.Logos.Remove(saved.Path); rmErr != nil {
			logging.Warn(s.Log, "settings", "ReplaceLogo", "remove unsaved logo", saved.Path, rmErr)
		}
		return nil, err
	}
	if oldPath != "" && oldPath != saved.Path {
		if err := s.Logos.Remove(oldPath); err != nil {
			logging.Warn(s.Log, "settings", "ReplaceLogo", "remove previous logo", oldPath, err)
		}
	}
	return out, nil
}

// LogoPath resolves a stored logo filename for serving.
func (s *SettingsService) LogoPath(filename string) (string, error) {
	return s.Logos.Path(filename)
}
