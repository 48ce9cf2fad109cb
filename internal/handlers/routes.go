package handlers

import (
	"net/http"

	"github.com/diewo77/go-invoicing/internal/logging"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Services are the use-cases the handlers call into.
type Services struct {
	Store      Pinger
	Clients    *services.ClientService
	Products   *services.ProductService
	Invoices   *services.InvoiceService
	Payments   *services.PaymentService
	Quotations *services.QuotationService
	Settings   *services.SettingsService
	Documents  *services.DocumentService
}

type Handlers struct {
	Health     *HealthHandler
	Clients    *ClientHandler
	Products   *ProductHandler
	Invoices   *InvoiceHandler
	Payments   *PaymentHandler
	Quotations *QuotationHandler
	Settings   *SettingsHandler
}

func New(s Services, log logrus.FieldLogger) *Handlers {
	if log == nil {
		log = logging.Discard()
	}
	return &Handlers{
		Health:     NewHealthHandler(s.Store, log),
		Clients:    NewClientHandler(s.Clients, log),
		Products:   NewProductHandler(s.Products, log),
		Invoices:   NewInvoiceHandler(s.Invoices, s.Documents, log),
		Payments:   NewPaymentHandler(s.Payments, log),
		Quotations: NewQuotationHandler(s.Quotations, s.Documents, log),
		Settings:   NewSettingsHandler(s.Settings, log),
	}
}

// Mount registers every route on r. heavy wraps the PDF and upload
// routes, typically with a rate limiter; nil leaves them unwrapped.
func (h *Handlers) Mount(r chi.Router, heavy func(http.Handler) http.Handler) {
	if heavy == nil {
		heavy = func(next http.Handler) http.Handler { return next }
	}

	r.Get("/health", h.Health.Health)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/settings/logo/{filename}", h.Settings.Logo)

	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.Clients.List)
			r.Post("/", h.Clients.Create)
			r.Get("/{id}", h.Clients.Get)
			r.Put("/{id}", h.Clients.Update)
			r.Delete("/{id}", h.Clients.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.List)
			r.Post("/", h.Products.Create)
			r.Get("/active", h.Products.Active)
			r.Get("/search", h.Products.Search)
			r.Get("/categories", h.Products.Categories)
			r.Get("/{id}", h.Products.Get)
			r.Put("/{id}", h.Products.Update)
			r.Delete("/{id}", h.Products.Delete)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.Invoices.List)
			r.Post("/", h.Invoices.Create)
			r.Get("/{id}", h.Invoices.Get)
			r.Put("/{id}", h.Invoices.Update)
			r.Delete("/{id}", h.Invoices.Delete)
			r.With(heavy).Get("/{id}/pdf", h.Invoices.PDF)
			r.Get("/{id}/payments", h.Payments.List)
			r.Post("/{id}/payments", h.Payments.Create)
		})
		r.Delete("/payments/{id}", h.Payments.Delete)

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", h.Quotations.List)
			r.Post("/", h.Quotations.Create)
			r.Get("/{id}", h.Quotations.Get)
			r.Put("/{id}", h.Quotations.Update)
			r.Delete("/{id}", h.Quotations.Delete)
			r.Post("/{id}/convert", h.Quotations.Convert)
			r.With(heavy).Get("/{id}/pdf", h.Quotations.PDF)
		})

		r.Get("/settings", h.Settings.Get)
		r.Put("/settings", h.Settings.Update)
		r.With(heavy).Post("/settings/logo", h.Settings.UploadLogo)
	})
}
