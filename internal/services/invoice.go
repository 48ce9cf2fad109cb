package services

import (
	"context"
	"time"

	"github.com/diewo77/go-invoicing/internal/finance"
	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/validation"
)

// InvoiceInput is a create or edit request. Status is ignored on create.
type InvoiceInput struct {
	ClientID  uint
	IssueDate time.Time
	DueDate   *time.Time
	Status    string
	Notes     string
	Terms     string
	Items     []ItemInput
}

// InvoiceView is an invoice with its derived amounts.
type InvoiceView struct {
	*models.Invoice
	Summary finance.Summary `json:"summary"`
}

func viewInvoice(inv *models.Invoice) InvoiceView {
	return InvoiceView{Invoice: inv, Summary: inv.Summary()}
}

// InvoiceService handles invoice use-cases.
type InvoiceService struct {
	Store *store.Store
	Now   func() time.Time
}

func NewInvoiceService(st *store.Store) *InvoiceService {
	return &InvoiceService{Store: st, Now: time.Now}
}

func (s *InvoiceService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *InvoiceService) List(ctx context.Context, q listing.Query) (listing.Page[InvoiceView], error) {
	p, err := s.Store.ListInvoices(ctx, q)
	if err != nil {
		return listing.Page[InvoiceView]{}, err
	}
	items := make([]InvoiceView, len(p.Items))
	for i := range p.Items {
		items[i] = viewInvoice(&p.Items[i])
	}
	return listing.Page[InvoiceView]{Items: items, Total: p.Total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages}, nil
}

func (s *InvoiceService) Get(ctx context.Context, id uint) (*InvoiceView, error) {
	inv, err := s.Store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	v := viewInvoice(inv)
	return &v, nil
}

func (s *InvoiceService) parse(in InvoiceInput, requireStatus bool) ([]lineValues, error) {
	v := validation.Violations{}
	if in.ClientID == 0 {
		v.Add("client_id", "required")
	}
	if requireStatus && in.Status != "" && !models.InvoiceStatus(in.Status).Valid() {
		v.Add("status", "invalid_choice")
	}
	lines, err := parseItems(in.Items, v)
	if err != nil {
		return nil, err
	}
	return lines, invalid(v)
}

// Create stores a new draft invoice with a freshly allocated number.
func (s *InvoiceService) Create(ctx context.Context, in InvoiceInput) (*InvoiceView, error) {
	lines, err := s.parse(in, false)
	if err != nil {
		return nil, err
	}
	issue := in.IssueDate
	if issue.IsZero() {
		issue = s.now()
	}
	inv := &models.Invoice{
		ClientID:  in.ClientID,
		IssueDate: issue,
		DueDate:   in.DueDate,
		Status:    models.InvoiceStatusDraft,
		Notes:     in.Notes,
		Terms:     in.Terms,
		Items:     invoiceItems(lines),
	}
	if err := s.Store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return s.Get(ctx, inv.ID)
}

// Update rewrites an invoice and replaces all its items. An empty status
// keeps the current one.
func (s *InvoiceService) Update(ctx context.Context, id uint, in InvoiceInput) (*InvoiceView, error) {
	lines, err := s.parse(in, true)
	if err != nil {
		return nil, err
	}
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		inv, err := tx.GetInvoice(ctx, id)
		if err != nil {
			return err
		}
		inv.ClientID = in.ClientID
		inv.Client = nil
		if !in.IssueDate.IsZero() {
			inv.IssueDate = in.IssueDate
		}
		inv.DueDate = in.DueDate
		if in.Status != "" {
			inv.Status = models.InvoiceStatus(in.Status)
		}
		inv.Notes = in.Notes
		inv.Terms = in.Terms
		inv.Items = invoiceItems(lines)
		inv.Payments = nil
		return tx.UpdateInvoice(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	return s.Store.DeleteInvoice(ctx, id)
}
