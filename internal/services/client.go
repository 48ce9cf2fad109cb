package services

import (
	"context"
	"strings"

	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/validation"
)

// ClientInput carries editable client fields.
type ClientInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"omitempty,email,max=100"`
	Phone   string `json:"phone" validate:"max=20"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=50"`
	ZipCode string `json:"zip_code" validate:"max=20"`
	Country string `json:"country" validate:"max=100"`
	TaxID   string `json:"tax_id" validate:"max=50"`
}

func (in ClientInput) trimmed() ClientInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

func (in ClientInput) apply(c *models.Client) {
	c.Name, c.Email, c.Phone = in.Name, in.Email, in.Phone
	c.Address, c.City, c.State = in.Address, in.City, in.State
	c.ZipCode, c.Country, c.TaxID = in.ZipCode, in.Country, in.TaxID
}

type ClientService struct {
	Store *store.Store
}

func NewClientService(st *store.Store) *ClientService { return &ClientService{Store: st} }

func (s *ClientService) validate(in ClientInput) error {
	v := validation.Violations{}
	if err := validation.Struct(in, v); err != nil {
		return err
	}
	return invalid(v)
}

func (s *ClientService) List(ctx context.Context, q listing.Query) (listing.Page[models.Client], error) {
	return s.Store.ListClients(ctx, q)
}

func (s *ClientService) All(ctx context.Context) ([]models.Client, error) {
	return s.Store.AllClients(ctx)
}

func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	return s.Store.GetClient(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*models.Client, error) {
	in = in.trimmed()
	if err := s.validate(in); err != nil {
		return nil, err
	}
	c := &models.Client{}
	in.apply(c)
	if err := s.Store.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, id uint, in ClientInput) (*models.Client, error) {
	in = in.trimmed()
	if err := s.validate(in); err != nil {
		return nil, err
	}
	c, err := s.Store.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(c)
	if err := s.Store.UpdateClient(ctx, c); err != nil {
		return nil, err
	}
	return s.Store.GetClient(ctx, id)
}

// Delete removes the client and everything billed to it.
func (s *ClientService) Delete(ctx context.Context, id uint) error {
	return s.Store.DeleteClient(ctx, id)
}
