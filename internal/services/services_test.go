package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/diewo77/go-invoicing/internal/db/dbtest"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/pdf"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/uploads"
	"github.com/diewo77/go-invoicing/internal/validation"
	"github.com/diewo77/go-invoicing/internal/variants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(dbtest.Open(t))
}

func seedClient(t *testing.T, st *store.Store) *models.Client {
	t.Helper()
	c := &models.Client{Name: "Acme", Email: "ap@acme.test", City: "Springfield"}
	require.NoError(t, st.CreateClient(context.Background(), c))
	return c
}

func seedInvoice(t *testing.T, st *store.Store, items ...ItemInput) *InvoiceView {
	t.Helper()
	c := seedClient(t, st)
	svc := NewInvoiceService(st)
	svc.Now = func() time.Time { return fixedNow }
	inv, err := svc.Create(context.Background(), InvoiceInput{ClientID: c.ID, Items: items})
	require.NoError(t, err)
	return inv
}

func TestStatusAfterPayment(t *testing.T) {
	tests := []struct {
		name    string
		current models.InvoiceStatus
		amount  float64
		balance float64
		want    models.InvoiceStatus
	}{
		{"covers balance", models.InvoiceStatusDraft, 100, 100, models.InvoiceStatusPaid},
		{"overpays", models.InvoiceStatusSent, 150, 100, models.InvoiceStatusPaid},
		{"partial from draft", models.InvoiceStatusDraft, 40, 100, models.InvoiceStatusSent},
		{"partial keeps overdue", models.InvoiceStatusOverdue, 40, 100, models.InvoiceStatusOverdue},
		{"covers overdue", models.InvoiceStatusOverdue, 100, 100, models.InvoiceStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusAfterPayment(tt.current, tt.amount, tt.balance))
		})
	}
}

func TestStatusAfterPaymentRemoval(t *testing.T) {
	assert.Equal(t, models.InvoiceStatusSent, StatusAfterPaymentRemoval(0.01))
	assert.Equal(t, models.InvoiceStatusPaid, StatusAfterPaymentRemoval(0))
	assert.Equal(t, models.InvoiceStatusPaid, StatusAfterPaymentRemoval(-5))
}

func TestRecordPaymentFull(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	inv := seedInvoice(t, st, ItemInput{Description: "Service", Quantity: "1", UnitPrice: "100"})
	require.InDelta(t, 100, inv.Summary.Balance, 1e-9)

	res, err := NewPaymentService(st).Record(ctx, inv.ID, PaymentInput{Amount: "100", Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, res.InvoiceStatus)

	got, err := st.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, got.Status)
	assert.InDelta(t, 0, got.Summary().Balance, 1e-9)
}

func TestRecordPaymentPartial(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	inv := seedInvoice(t, st, ItemInput{Description: "Service", Quantity: "1", UnitPrice: "100"})

	res, err := NewPaymentService(st).Record(ctx, inv.ID, PaymentInput{Amount: "40"})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, res.InvoiceStatus)
	assert.False(t, res.Payment.PaymentDate.IsZero())

	got, err := NewInvoiceService(st).Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, got.Status)
	assert.InDelta(t, 60, got.Summary.Balance, 1e-9)
}

func TestRecordPaymentRejectsBadAmount(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	inv := seedInvoice(t, st, ItemInput{Description: "Service", UnitPrice: "100"})
	svc := NewPaymentService(st)

	_, err := svc.Record(ctx, inv.ID, PaymentInput{Amount: "ten"})
	assert.True(t, errors.Is(err, variants.ErrValueConversion))

	_, err = svc.Record(ctx, inv.ID, PaymentInput{Amount: "0"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must_be_positive", verr.Violations["amount"])

	for _, raw := range []string{"+Inf", "NaN"} {
		_, err = svc.Record(ctx, inv.ID, PaymentInput{Amount: raw})
		assert.True(t, errors.Is(err, variants.ErrValueConversion), raw)
	}
	got, err := NewInvoiceService(st).Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusDraft, got.Status)

	_, err = svc.Record(ctx, 9999, PaymentInput{Amount: "10"})
	assert.True(t, errors.Is(err, store.ErrNotFound))

	payments, err := svc.List(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestDeletePaymentRecomputesStatus(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	inv := seedInvoice(t, st, ItemInput{Description: "Service", UnitPrice: "100"})
	svc := NewPaymentService(st)

	first, err := svc.Record(ctx, inv.ID, PaymentInput{Amount: "60"})
	require.NoError(t, err)
	second, err := svc.Record(ctx, inv.ID, PaymentInput{Amount: "40"})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, second.InvoiceStatus)

	status, err := svc.Delete(ctx, first.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, status)

	_, err = svc.Delete(ctx, first.Payment.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDeleteOnlyPaymentOfZeroTotalInvoice(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	inv := seedInvoice(t, st)
	svc := NewPaymentService(st)
	res, err := svc.Record(ctx, inv.ID, PaymentInput{Amount: "5"})
	require.NoError(t, err)

	status, err := svc.Delete(ctx, res.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, status)
}

func TestInvoiceItemsDefaultsAndSkips(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	inv := seedInvoice(t, st,
		ItemInput{Description: "Widget"},
		ItemInput{Description: "   ", Quantity: "3", UnitPrice: "9"},
		ItemInput{Description: "Gadget", Quantity: "2", UnitPrice: "10", TaxRate: "20"},
	)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, 1.0, inv.Items[0].Quantity)
	assert.Equal(t, 0.0, inv.Items[0].UnitPrice)
	assert.Equal(t, "INV-00001", inv.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.InDelta(t, 24, inv.Summary.Total, 1e-9)

	svc := NewInvoiceService(st)
	_, err := svc.Update(ctx, inv.ID, InvoiceInput{ClientID: inv.ClientID, Status: "final"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "invalid_choice", verr.Violations["status"])

	_, err = svc.Update(ctx, inv.ID, InvoiceInput{ClientID: inv.ClientID, Items: []ItemInput{{Description: "x", Quantity: "lots"}}})
	var cerr *variants.ConversionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "items[0].quantity", cerr.Field)

	updated, err := svc.Update(ctx, inv.ID, InvoiceInput{ClientID: inv.ClientID, Status: "overdue",
		Items: []ItemInput{{Description: "Only", UnitPrice: "5"}}})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusOverdue, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "INV-00001", updated.InvoiceNumber)
}

func TestConvertQuotationToInvoice(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	c := seedClient(t, st)
	qs := NewQuotationService(st)
	qs.Now = func() time.Time { return fixedNow }

	q, err := qs.Create(ctx, QuotationInput{
		ClientID: c.ID,
		Notes:    "thanks",
		Terms:    "net 30",
		Items: []ItemInput{
			{Description: "Design", Quantity: "2", UnitPrice: "150", TaxRate: "20"},
			{Description: "Hosting", Quantity: "12", UnitPrice: "9.5", TaxRate: "0"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "QT-00001", q.QuotationNumber)
	assert.Equal(t, models.QuotationStatusPending, q.Status)

	inv, err := qs.ConvertToInvoice(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-00001", inv.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, c.ID, inv.ClientID)
	assert.Equal(t, "thanks", inv.Notes)
	assert.Equal(t, "net 30", inv.Terms)
	require.NotNil(t, inv.DueDate)
	assert.True(t, inv.DueDate.Equal(inv.IssueDate.AddDate(0, 0, 30)))
	assert.True(t, inv.IssueDate.Equal(fixedNow))

	require.Len(t, inv.Items, 2)
	for i := range inv.Items {
		src, dst := q.Items[i], inv.Items[i]
		assert.Equal(t, src.Description, dst.Description)
		assert.Equal(t, src.Quantity, dst.Quantity)
		assert.Equal(t, src.UnitPrice, dst.UnitPrice)
		assert.Equal(t, src.TaxRate, dst.TaxRate)
	}
	assert.InDelta(t, q.Totals.Total, inv.Summary.Total, 1e-9)

	after, err := qs.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotationStatusAccepted, after.Status)

	// editing the quotation leaves the invoice copy alone
	_, err = qs.Update(ctx, q.ID, QuotationInput{ClientID: c.ID, Items: []ItemInput{{Description: "Changed"}}})
	require.NoError(t, err)
	again, err := NewInvoiceService(st).Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design", again.Items[0].Description)
}

func TestConvertRollsBackOnNumberConflict(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	c := seedClient(t, st)
	qs := NewQuotationService(st)
	q, err := qs.Create(ctx, QuotationInput{ClientID: c.ID, Items: []ItemInput{{Description: "Design", UnitPrice: "100"}}})
	require.NoError(t, err)

	// stored outside the sequence with the number conversion will allocate
	taken := &models.Invoice{InvoiceNumber: "INV-00002", ClientID: c.ID, IssueDate: fixedNow, Status: models.InvoiceStatusDraft}
	require.NoError(t, st.CreateInvoice(ctx, taken))

	_, err = qs.ConvertToInvoice(ctx, q.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrConflict), "got %v", err)

	after, err := qs.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, models.QuotationStatusPending, after.Status)

	var n, items int64
	require.NoError(t, st.DB().Model(&models.Invoice{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
	require.NoError(t, st.DB().Model(&models.InvoiceItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestConvertMissingQuotation(t *testing.T) {
	st := newStore(t)
	_, err := NewQuotationService(st).ConvertToInvoice(context.Background(), 42)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	var n int64
	require.NoError(t, st.DB().Model(&models.Invoice{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProductSKUGeneration(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := NewProductService(st)

	a, err := svc.Create(ctx, ProductInput{Name: "Widget!!", Price: "10", IsActive: true})
	require.NoError(t, err)
	b, err := svc.Create(ctx, ProductInput{Name: "Widget!!", Price: "12", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "WIDGET001", a.SKUValue())
	assert.Equal(t, "WIDGET002", b.SKUValue())

	explicit, err := svc.Create(ctx, ProductInput{Name: "Widget!!", SKU: "custom-1", Price: "1"})
	require.NoError(t, err)
	assert.Equal(t, "custom-1", explicit.SKUValue())
	assert.False(t, explicit.IsActive)

	_, err = svc.Create(ctx, ProductInput{Name: "Other", SKU: "custom-1", Price: "1"})
	assert.True(t, errors.Is(err, store.ErrConflict))
}

func TestProductRejectsMalformedNumbers(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := NewProductService(st)

	_, err := svc.Create(ctx, ProductInput{Name: "Mug", Price: "abc"})
	assert.True(t, errors.Is(err, variants.ErrValueConversion))
	_, err = svc.Create(ctx, ProductInput{Name: "Mug", Price: "5", TaxRate: "x%"})
	assert.True(t, errors.Is(err, variants.ErrValueConversion))
	_, err = svc.Create(ctx, ProductInput{Name: "", Price: "5"})
	assert.True(t, errors.Is(err, ErrValidation))

	var n int64
	require.NoError(t, st.DB().Model(&models.Product{}).Count(&n).Error)
	assert.Zero(t, n, "nothing may be persisted for a rejected request")
}

func TestProductVariantsGenerateAndReplace(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := NewProductService(st)

	p, err := svc.Create(ctx, ProductInput{
		Name: "App", SKU: "APP001", Price: "49", TaxRate: "20", IsActive: true, HasVariants: true,
		Options: []OptionInput{
			{Name: "Version", Values: " Basic, Pro ,Basic,"},
			{Name: "Seats", Values: "1,10"},
			{Name: "", Values: "ignored"},
		},
		Variants: []VariantInput{{Values: map[string]string{"Version": "Pro", "Seats": "10"}, Price: "199", TaxRate: "10"}},
	})
	require.NoError(t, err)
	require.Len(t, p.Options, 2)
	require.Len(t, p.Variants, 4)

	skus := make([]string, len(p.Variants))
	for i, v := range p.Variants {
		skus[i] = v.SKU
	}
	assert.Equal(t, []string{"APP001-BAS-1", "APP001-BAS-10", "APP001-PRO-1", "APP001-PRO-10"}, skus)
	assert.Equal(t, 49.0, p.EffectivePrice())
	last := p.Variants[3]
	assert.Equal(t, 199.0, last.Price)
	assert.Equal(t, 10.0, last.EffectiveTaxRate(p))
	assert.Equal(t, 20.0, p.Variants[0].EffectiveTaxRate(p))

	name, err := p.VariantName(&p.Variants[1])
	require.NoError(t, err)
	assert.Equal(t, "App - Basic / 10", name)

	edited, err := svc.Update(ctx, p.ID, ProductInput{
		Name: "App", Price: "59", IsActive: true, HasVariants: true,
		Options: []OptionInput{{Name: "Version", Values: "Basic,Pro,Enterprise"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "APP001", edited.SKUValue(), "blank SKU on edit keeps the stored one")
	require.Len(t, edited.Options, 1)
	require.Len(t, edited.Variants, 3)
	assert.Equal(t, "APP001-ENT", edited.Variants[2].SKU)
	assert.Equal(t, 59.0, edited.Variants[0].Price)

	var values int64
	require.NoError(t, st.DB().Model(&models.ProductOptionValue{}).Count(&values).Error)
	assert.EqualValues(t, 3, values)

	plain, err := svc.Update(ctx, p.ID, ProductInput{Name: "App", Price: "59", IsActive: true})
	require.NoError(t, err)
	assert.Empty(t, plain.Options)
	assert.Empty(t, plain.Variants)
	assert.Equal(t, 59.0, plain.EffectivePrice())
}

func TestProductVariantsNoOptions(t *testing.T) {
	st := newStore(t)
	p, err := NewProductService(st).Create(context.Background(), ProductInput{Name: "Empty", Price: "1", HasVariants: true})
	require.NoError(t, err)
	assert.Empty(t, p.Variants)
	assert.Equal(t, 1.0, p.EffectivePrice())
}

func TestProductDuplicateOptionName(t *testing.T) {
	_, err := NewProductService(newStore(t)).Create(context.Background(), ProductInput{
		Name: "Shirt", Price: "1", HasVariants: true,
		Options: []OptionInput{{Name: "Size", Values: "S"}, {Name: "Size", Values: "M"}},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "duplicate", verr.Violations["options[1].name"])
}

func TestProductUnknownVariantCombination(t *testing.T) {
	st := newStore(t)
	_, err := NewProductService(st).Create(context.Background(), ProductInput{
		Name: "Shirt", Price: "10", HasVariants: true,
		Options: []OptionInput{{Name: "Size", Values: "S,M"}},
		Variants: []VariantInput{
			{Values: map[string]string{" Size ": "M "}, Price: "12"},
			{Values: map[string]string{"Size": "XL"}, Price: "15"},
		},
	})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validation.Violations{"variants[1].values": "unknown_combination"}, verr.Violations)

	var n int64
	require.NoError(t, st.DB().Model(&models.Product{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProductSearch(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := NewProductService(st)
	for i := 0; i < 12; i++ {
		_, err := svc.Create(ctx, ProductInput{Name: fmt.Sprintf("Cable %02d", i), Price: "1", IsActive: true})
		require.NoError(t, err)
	}
	out, err := svc.Search(ctx, "cable")
	require.NoError(t, err)
	assert.Len(t, out, store.SearchLimit)

	out, err = svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClientValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(newStore(t))
	_, err := svc.Create(ctx, ClientInput{Name: " ", Email: "nope"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Violations["name"])
	assert.Equal(t, "invalid_email", verr.Violations["email"])

	c, err := svc.Create(ctx, ClientInput{Name: " Acme ", Email: "a@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)

	up, err := svc.Update(ctx, c.ID, ClientInput{Name: "Acme Ltd", City: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", up.Name)
	assert.Equal(t, "", up.Email)

	noEmail, err := svc.Create(ctx, ClientInput{Name: "Walk-in"})
	require.NoError(t, err, "email is optional")
	assert.Empty(t, noEmail.Email)

	_, err = svc.Update(ctx, 999, ClientInput{Name: "x"})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func pngData(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestSettingsReplaceLogo(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	logos := uploads.NewLogoStore(t.TempDir(), 0)
	tick := fixedNow
	logos.Now = func() time.Time { tick = tick.Add(time.Second); return tick }
	svc := NewSettingsService(st, logos, nil)

	first, err := svc.ReplaceLogo(ctx, "logo.png", bytes.NewReader(pngData(t)))
	require.NoError(t, err)
	assert.Equal(t, "20240501_100001_logo.png", first.LogoFilename)
	_, err = os.Stat(first.LogoPath)
	require.NoError(t, err)

	second, err := svc.ReplaceLogo(ctx, "new logo.png", bytes.NewReader(pngData(t)))
	require.NoError(t, err)
	assert.Equal(t, "20240501_100002_new_logo.png", second.LogoFilename)
	_, err = os.Stat(first.LogoPath)
	assert.True(t, os.IsNotExist(err), "previous logo is removed")

	_, err = svc.ReplaceLogo(ctx, "logo.exe", bytes.NewReader([]byte("x")))
	assert.True(t, errors.Is(err, uploads.ErrExtensionNotAllowed))

	cs, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.LogoFilename, cs.LogoFilename)
}

func TestSettingsReplaceLogoIgnoresMissingOldFile(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	cs, err := st.Settings(ctx)
	require.NoError(t, err)
	cs.LogoPath = "/nonexistent/dir/old.png"
	require.NoError(t, st.UpdateSettings(ctx, cs))

	svc := NewSettingsService(st, uploads.NewLogoStore(t.TempDir(), 0), nil)
	_, err = svc.ReplaceLogo(ctx, "logo.png", bytes.NewReader(pngData(t)))
	assert.NoError(t, err)
}

func TestSettingsUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(newStore(t), uploads.NewLogoStore(t.TempDir(), 0), nil)
	cs, err := svc.Update(ctx, SettingsInput{CompanyName: "", BankName: "First Bank", CompanyEmail: "hi@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCompanyName, cs.CompanyName)
	assert.True(t, cs.HasBankDetails())

	_, err = svc.Update(ctx, SettingsInput{CompanyEmail: "bad"})
	assert.True(t, errors.Is(err, ErrValidation))
}

type captureRenderer struct {
	doc *pdf.Document
	err error
}

func (c *captureRenderer) Render(_ context.Context, doc *pdf.Document) ([]byte, error) {
	c.doc = doc
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestInvoicePDF(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	inv := seedInvoice(t, st,
		ItemInput{Description: "A", Quantity: "2", UnitPrice: "100", TaxRate: "20"},
		ItemInput{Description: "B", Quantity: "1", UnitPrice: "50", TaxRate: "10"},
	)
	r := &captureRenderer{}
	docs := NewDocumentService(st, r)

	out, err := docs.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-00001.pdf", out.Filename)
	assert.False(t, r.doc.ShowPaid)
	assert.InDelta(t, 295, r.doc.Totals.Total, 1e-9)
	assert.InDelta(t, 240, r.doc.Lines[0].Total, 1e-9)
	assert.Equal(t, "Acme", r.doc.Recipient.Name)
	assert.Equal(t, models.DefaultCompanyName, r.doc.Issuer.Name)

	_, err = NewPaymentService(st).Record(ctx, inv.ID, PaymentInput{Amount: "95"})
	require.NoError(t, err)
	_, err = docs.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, r.doc.ShowPaid)
	assert.InDelta(t, 200, r.doc.Balance, 1e-9)

	r.err = fmt.Errorf("%w: boom", pdf.ErrRender)
	_, err = docs.InvoicePDF(ctx, inv.ID)
	assert.True(t, errors.Is(err, pdf.ErrRender))

	_, err = docs.QuotationPDF(ctx, 77)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}
