// Package pdf renders invoices and quotations. It only lays out values that
// were computed elsewhere.
package pdf

import (
	"context"
	"errors"
	"time"

	"github.com/diewo77/go-invoicing/internal/finance"
)

// ErrRender means no document was produced.
var ErrRender = errors.New("pdf_generation_failed")

// Party is an issuer or recipient block.
type Party struct {
	Name    string
	Lines   []string
	Email   string
	Phone   string
	Website string
	TaxID   string
}

// Line is one row of the items table. Total is precomputed.
type Line struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	TaxRate     float64
	Total       float64
}

// Document is everything printed on a page.
type Document struct {
	Title      string
	Number     string
	Status     string
	IssueDate  time.Time
	DateLabel  string
	Date       *time.Time
	Issuer     Party
	LogoPath   string
	Recipient  Party
	Lines      []Line
	Totals     finance.Totals
	ShowPaid   bool
	Paid       float64
	Balance    float64
	Notes      string
	Terms      string
	BankLines  []string
	PayMethods string
	PayInfo    string
}

// Renderer turns a Document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, doc *Document) ([]byte, error)
}
