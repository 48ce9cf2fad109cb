package handlers

import (
	"net/http"

	"github.com/diewo77/go-invoicing/internal/httpx"
	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/sirupsen/logrus"
)

type optionRequest struct {
	Name   string    `json:"name"`
	Values ValueList `json:"values"`
}

type variantRequest struct {
	Values   map[string]string `json:"values"`
	SKU      string            `json:"sku"`
	Price    FlexNumber        `json:"price"`
	TaxRate  FlexNumber        `json:"tax_rate"`
	IsActive *bool             `json:"is_active"`
}

type productRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	SKU         string           `json:"sku"`
	Price       FlexNumber       `json:"price"`
	TaxRate     FlexNumber       `json:"tax_rate"`
	Category    string           `json:"category"`
	IsActive    *bool            `json:"is_active"`
	HasVariants bool             `json:"has_variants"`
	Options     []optionRequest  `json:"options"`
	Variants    []variantRequest `json:"variants"`
}

// input converts the body; is_active defaults to true when omitted.
func (p productRequest) input() services.ProductInput {
	in := services.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       string(p.Price),
		TaxRate:     string(p.TaxRate),
		Category:    p.Category,
		IsActive:    p.IsActive == nil || *p.IsActive,
		HasVariants: p.HasVariants,
	}
	for _, o := range p.Options {
		in.Options = append(in.Options, services.OptionInput{Name: o.Name, Values: string(o.Values)})
	}
	for _, v := range p.Variants {
		in.Variants = append(in.Variants, services.VariantInput{
			Values:   v.Values,
			SKU:      v.SKU,
			Price:    string(v.Price),
			TaxRate:  string(v.TaxRate),
			IsActive: v.IsActive,
		})
	}
	return in
}

type ProductHandler struct {
	svc *services.ProductService
	log logrus.FieldLogger
}

func NewProductHandler(svc *services.ProductService, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

// List supports ?search, ?search_by (name, sku, id), ?category and
// ?status (all, active, inactive).
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), listing.Parse(r.URL.Query()))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Active lists every active product, for item pickers.
func (h *ProductHandler) Active(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Active(r.Context())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cats)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	p, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update replaces the product fields and regenerates its variant set.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	var req productRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	p, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.Error(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
