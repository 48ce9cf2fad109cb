package main

import (
	"net/http"
	"time"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/handlers"
	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/pdf"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/uploads"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
	"github.com/unrolled/secure"
	"gorm.io/gorm"
)

// App is the HTTP entry point: middleware plus every route.
type App struct {
	router chi.Router
}

// NewApp wires store, services and handlers onto a chi router.
func NewApp(cfg *config.Config, db *gorm.DB, log logrus.FieldLogger) *App {
	st := store.New(db)
	svcs := handlers.Services{
		Store:      st,
		Clients:    services.NewClientService(st),
		Products:   services.NewProductService(st),
		Invoices:   services.NewInvoiceService(st),
		Payments:   services.NewPaymentService(st),
		Quotations: services.NewQuotationService(st),
		Settings:   services.NewSettingsService(st, uploads.NewLogoStore(cfg.UploadDir, cfg.LogoMaxWidth), log),
		Documents:  services.NewDocumentService(st, pdf.NewMaroto()),
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders(cfg))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})

	limiter := httprate.Limit(cfg.RateLimitPerMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.JSONError(w, http.StatusTooManyRequests, "rate_limited", nil)
		}),
	)
	handlers.New(svcs, log).Mount(r, limiter)
	return &App{router: r}
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func secureHeaders(cfg *config.Config) func(http.Handler) http.Handler {
	s := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           cfg.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	return s.Handler
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			entry := log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			})
			if ww.Status() >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Info("request")
		})
	}
}
