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

type QuotationInput struct {
	ClientID   uint
	IssueDate  time.Time
	ValidUntil *time.Time
	Status     string
	Notes      string
	Terms      string
	Items      []ItemInput
}

type QuotationView struct {
	*models.Quotation
	Totals finance.Totals `json:"totals"`
}

type QuotationService struct {
	Store *store.Store
	Now   func() time.Time
}

func NewQuotationService(st *store.Store) *QuotationService {
	return &QuotationService{Store: st, Now: time.Now}
}

func (s *QuotationService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *QuotationService) List(ctx context.Context, q listing.Query) (listing.Page[QuotationView], error) {
	p, err := s.Store.ListQuotations(ctx, q)
	if err != nil {
		return listing.Page[QuotationView]{}, err
	}
	items := make([]QuotationView, len(p.Items))
	for i := range p.Items {
		items[i] = QuotationView{Quotation: &p.Items[i], Totals: p.Items[i].Totals()}
	}
	return listing.Page[QuotationView]{Items: items, Total: p.Total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages}, nil
}

func (s *QuotationService) Get(ctx context.Context, id uint) (*QuotationView, error) {
	q, err := s.Store.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	return &QuotationView{Quotation: q, Totals: q.Totals()}, nil
}

func (s *QuotationService) parse(in QuotationInput, checkStatus bool) ([]lineValues, error) {
	v := validation.Violations{}
	if in.ClientID == 0 {
		v.Add("client_id", "required")
	}
	if checkStatus && in.Status != "" && !models.QuotationStatus(in.Status).Valid() {
		v.Add("status", "invalid_choice")
	}
	lines, err := parseItems(in.Items, v)
	if err != nil {
		return nil, err
	}
	return lines, invalid(v)
}

// Create stores a new pending quotation.
func (s *QuotationService) Create(ctx context.Context, in QuotationInput) (*QuotationView, error) {
	lines, err := s.parse(in, false)
	if err != nil {
		return nil, err
	}
	issue := in.IssueDate
	if issue.IsZero() {
		issue = s.now()
	}
	q := &models.Quotation{
		ClientID:   in.ClientID,
		IssueDate:  issue,
		ValidUntil: in.ValidUntil,
		Status:     models.QuotationStatusPending,
		Notes:      in.Notes,
		Terms:      in.Terms,
		Items:      quotationItems(lines),
	}
	if err := s.Store.CreateQuotation(ctx, q); err != nil {
		return nil, err
	}
	return s.Get(ctx, q.ID)
}

// Update rewrites a quotation and replaces its items. An empty status keeps
// the current one.
func (s *QuotationService) Update(ctx context.Context, id uint, in QuotationInput) (*QuotationView, error) {
	lines, err := s.parse(in, true)
	if err != nil {
		return nil, err
	}
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		q, err := tx.GetQuotation(ctx, id)
		if err != nil {
			return err
		}
		q.ClientID = in.ClientID
		q.Client = nil
		if !in.IssueDate.IsZero() {
			q.IssueDate = in.IssueDate
		}
		q.ValidUntil = in.ValidUntil
		if in.Status != "" {
			q.Status = models.QuotationStatus(in.Status)
		}
		q.Notes = in.Notes
		q.Terms = in.Terms
		q.Items = quotationItems(lines)
		return tx.UpdateQuotation(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *QuotationService) Delete(ctx context.Context, id uint) error {
	return s.Store.DeleteQuotation(ctx, id)
}

// ConvertToInvoice creates a draft invoice from the quotation and marks the
// quotation accepted. Both writes commit together or not at all. A
// quotation may be converted more than once.
func (s *QuotationService) ConvertToInvoice(ctx context.Context, id uint) (*InvoiceView, error) {
	var invoiceID uint
	err := s.Store.WithTx(ctx, func(tx *store.Store) error {
		q, err := tx.GetQuotation(ctx, id)
		if err != nil {
			return err
		}
		inv := InvoiceFromQuotation(q, s.now())
		if err := tx.CreateInvoice(ctx, inv); err != nil {
			return err
		}
		if err := tx.SetQuotationStatus(ctx, q.ID, models.QuotationStatusAccepted); err != nil {
			return err
		}
		invoiceID = inv.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	inv, err := s.Store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	v := viewInvoice(inv)
	return &v, nil
}
