package services

import (
	"context"
	"strings"

	"github.com/diewo77/go-invoicing/internal/finance"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/pdf"
	"github.com/diewo77/go-invoicing/internal/store"
)

// DocumentService renders invoices and quotations through a pdf.Renderer.
// Amounts are computed here and handed to the renderer ready to print.
type DocumentService struct {
	Store    *store.Store
	Renderer pdf.Renderer
}

func NewDocumentService(st *store.Store, r pdf.Renderer) *DocumentService {
	return &DocumentService{Store: st, Renderer: r}
}

// Rendered is a finished PDF and its download name.
type Rendered struct {
	Filename string
	Content  []byte
}

func (s *DocumentService) InvoicePDF(ctx context.Context, id uint) (*Rendered, error) {
	inv, err := s.Store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	cs, err := s.Store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.Renderer.Render(ctx, InvoiceDocument(inv, cs))
	if err != nil {
		return nil, err
	}
	return &Rendered{Filename: inv.InvoiceNumber + ".pdf", Content: out}, nil
}

func (s *DocumentService) QuotationPDF(ctx context.Context, id uint) (*Rendered, error) {
	q, err := s.Store.GetQuotation(ctx, id)
	if err != nil {
		return nil, err
	}
	cs, err := s.Store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	out, err := s.Renderer.Render(ctx, QuotationDocument(q, cs))
	if err != nil {
		return nil, err
	}
	return &Rendered{Filename: q.QuotationNumber + ".pdf", Content: out}, nil
}

func issuer(cs *models.CompanySettings) pdf.Party {
	return pdf.Party{
		Name:    cs.CompanyName,
		Lines:   cs.AddressLines(),
		Email:   cs.CompanyEmail,
		Phone:   cs.CompanyPhone,
		Website: cs.CompanyWebsite,
		TaxID:   cs.CompanyTaxID,
	}
}

func recipient(c *models.Client) pdf.Party {
	if c == nil {
		return pdf.Party{}
	}
	return pdf.Party{Name: c.Name, Lines: c.AddressLines(), Email: c.Email, Phone: c.Phone, TaxID: c.TaxID}
}

func bankLines(cs *models.CompanySettings) []string {
	var out []string
	add := func(label, v string) {
		if strings.TrimSpace(v) != "" {
			out = append(out, label+": "+v)
		}
	}
	add("Bank", cs.BankName)
	add("Account Number", cs.BankAccountNumber)
	add("Routing Number", cs.BankRoutingNumber)
	add("SWIFT", cs.BankSwiftCode)
	return out
}

// InvoiceDocument maps an invoice with items, payments and client onto a
// printable document. Paid and balance are shown once anything was paid.
func InvoiceDocument(inv *models.Invoice, cs *models.CompanySettings) *pdf.Document {
	sum := inv.Summary()
	lines := make([]pdf.Line, len(inv.Items))
	for i, it := range inv.Items {
		lines[i] = pdf.Line{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxRate: it.TaxRate, Total: finance.Total(it)}
	}
	return &pdf.Document{
		Title:      "INVOICE",
		Number:     inv.InvoiceNumber,
		Status:     string(inv.Status),
		IssueDate:  inv.IssueDate,
		DateLabel:  "Due Date",
		Date:       inv.DueDate,
		Issuer:     issuer(cs),
		LogoPath:   cs.LogoPath,
		Recipient:  recipient(inv.Client),
		Lines:      lines,
		Totals:     sum.Totals,
		ShowPaid:   sum.Paid > 0,
		Paid:       sum.Paid,
		Balance:    sum.Balance,
		Notes:      inv.Notes,
		Terms:      inv.Terms,
		BankLines:  bankLines(cs),
		PayMethods: cs.PaymentMethods,
		PayInfo:    cs.PaymentInstructions,
	}
}

// QuotationDocument maps a quotation onto a printable document. Quotations
// carry no payment information.
func QuotationDocument(q *models.Quotation, cs *models.CompanySettings) *pdf.Document {
	lines := make([]pdf.Line, len(q.Items))
	for i, it := range q.Items {
		lines[i] = pdf.Line{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxRate: it.TaxRate, Total: finance.Total(it)}
	}
	return &pdf.Document{
		Title:     "QUOTATION",
		Number:    q.QuotationNumber,
		Status:    string(q.Status),
		IssueDate: q.IssueDate,
		DateLabel: "Valid Until",
		Date:      q.ValidUntil,
		Issuer:    issuer(cs),
		LogoPath:  cs.LogoPath,
		Recipient: recipient(q.Client),
		Lines:     lines,
		Totals:    q.Totals(),
		Notes:     q.Notes,
		Terms:     q.Terms,
	}
}
