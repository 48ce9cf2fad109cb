// Package listing parses list query parameters: search term, search field,
// status and category filters, page number and page size.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSizes is the closed set of accepted per-page values.
var PageSizes = []int{5, 10, 25, 50, 100}

// DefaultPerPage is used when per_page is missing or not in PageSizes.
const DefaultPerPage = 10

// Field is a searchable column. Numeric fields match by equality on an
// integer; text fields match case-insensitively by substring.
type Field struct {
	Name    string
	Column  string
	Numeric bool
}

// Fields is an entity's set of searchable fields; the first is the default.
type Fields []Field

// Resolve returns the named field, falling back to the default.
func (fs Fields) Resolve(name string) Field {
	for _, f := range fs {
		if f.Name == name {
			return f
		}
	}
	return fs[0]
}

var (
	ClientFields = Fields{
		{Name: "name", Column: "clients.name"},
		{Name: "id", Column: "clients.id", Numeric: true},
		{Name: "email", Column: "clients.email"},
	}
	ProductFields = Fields{
		{Name: "name", Column: "products.name"},
		{Name: "sku", Column: "products.sku"},
		{Name: "id", Column: "products.id", Numeric: true},
	}
	InvoiceFields = Fields{
		{Name: "invoice_number", Column: "invoices.invoice_number"},
		{Name: "client_name", Column: "clients.name"},
		{Name: "invoice_id", Column: "invoices.id", Numeric: true},
	}
	QuotationFields = Fields{
		{Name: "quotation_number", Column: "quotations.quotation_number"},
		{Name: "client_name", Column: "clients.name"},
		{Name: "quotation_id", Column: "quotations.id", Numeric: true},
	}
)

// Query is a parsed list request.
type Query struct {
	Search   string
	SearchBy string
	Status   string
	Category string
	Page     int
	PerPage  int
}

// Parse reads a list request from URL query values.
func Parse(v url.Values) Query {
	return Query{
		Search:   strings.TrimSpace(v.Get("search")),
		SearchBy: strings.TrimSpace(v.Get("search_by")),
		Status:   strings.TrimSpace(v.Get("status")),
		Category: strings.TrimSpace(v.Get("category")),
		Page:     ParsePage(v.Get("page")),
		PerPage:  ParsePerPage(v.Get("per_page")),
	}
}

// ParsePerPage accepts only values from PageSizes.
func ParsePerPage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultPerPage
	}
	for _, s := range PageSizes {
		if s == n {
			return n
		}
	}
	return DefaultPerPage
}

// ParsePage returns a 1-based page number.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Offset is the row offset of the first item on the page.
func (q Query) Offset() int {
	page, per := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if per < 1 {
		per = DefaultPerPage
	}
	return (page - 1) * per
}

// Limit is the page size, defaulted.
func (q Query) Limit() int {
	if q.PerPage < 1 {
		return DefaultPerPage
	}
	return q.PerPage
}

// Filter describes how to apply Search to a field. ok is false when there is
// nothing to filter, including a numeric field given a non-numeric term.
func (q Query) Filter(fs Fields) (f Field, arg any, ok bool) {
	if q.Search == "" {
		return Field{}, nil, false
	}
	f = fs.Resolve(q.SearchBy)
	if f.Numeric {
		id, err := strconv.ParseUint(q.Search, 10, 64)
		if err != nil {
			return Field{}, nil, false
		}
		return f, id, true
	}
	return f, "%" + strings.ToLower(q.Search) + "%", true
}

// Page is one page of results.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

// NewPage wraps items with paging metadata.
func NewPage[T any](items []T, total int64, q Query) Page[T] {
	if items == nil {
		items = []T{}
	}
	per := q.Limit()
	pages := int((total + int64(per) - 1) / int64(per))
	page := q.Page
	if page < 1 {
		page = 1
	}
	return Page[T]{Items: items, Total: total, Page: page, PerPage: per, Pages: pages}
}
