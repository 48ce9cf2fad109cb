package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/diewo77/go-invoicing/internal/listing"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/store"
	"github.com/diewo77/go-invoicing/internal/validation"
	"github.com/diewo77/go-invoicing/internal/variants"
)

// OptionInput is one option axis; Values is the raw comma-separated list.
type OptionInput struct {
	Name   string
	Values string
}

// VariantInput customises the variant at the coordinate given by Values.
// Blank fields keep the generated defaults.
type VariantInput struct {
	Values   map[string]string
	SKU      string
	Price    string
	TaxRate  string
	IsActive *bool
}

// ProductInput is a create or edit request. Price and TaxRate are raw
// strings; a value that is not a number fails with a conversion error.
type ProductInput struct {
	Name        string
	Description string
	SKU         string
	Price       string
	TaxRate     string
	Category    string
	IsActive    bool
	HasVariants bool
	Options     []OptionInput
	Variants    []VariantInput
}

type parsedProduct struct {
	price     float64
	taxRate   float64
	options   []variants.Option
	overrides []variants.Override
}

// ProductService handles products and their variant sets.
type ProductService struct {
	Store *store.Store
}

func NewProductService(st *store.Store) *ProductService { return &ProductService{Store: st} }

func (s *ProductService) List(ctx context.Context, q listing.Query) (listing.Page[models.Product], error) {
	return s.Store.ListProducts(ctx, q)
}

func (s *ProductService) Active(ctx context.Context) ([]models.Product, error) {
	return s.Store.ActiveProducts(ctx)
}

// Search returns at most store.SearchLimit active products. An empty term
// matches nothing.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	if strings.TrimSpace(term) == "" {
		return []models.Product{}, nil
	}
	return s.Store.SearchProducts(ctx, term)
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.Store.Categories(ctx)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.Store.GetProduct(ctx, id)
}

// parse converts and validates everything before any write happens.
func (s *ProductService) parse(in ProductInput) (*parsedProduct, error) {
	price, err := variants.ParseFloat("price", in.Price)
	if err != nil {
		return nil, err
	}
	rate, err := variants.ParseFloatOr("tax_rate", in.TaxRate, 0)
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.NonNegativeFloat("price", price, v)
	validation.RangeFloat("tax_rate", rate, 0, 100, v)

	out := &parsedProduct{price: price, taxRate: rate}
	if in.HasVariants {
		seen := map[string]bool{}
		for i, o := range in.Options {
			name := strings.TrimSpace(o.Name)
			values := variants.ParseValues(o.Values)
			if name == "" || len(values) == 0 {
				continue
			}
			if seen[name] {
				v.Add(fmt.Sprintf("options[%d].name", i), "duplicate")
				continue
			}
			seen[name] = true
			out.options = append(out.options, variants.Option{Name: name, Values: values})
		}
		for i, vi := range in.Variants {
			o, err := parseOverride(i, vi, v)
			if err != nil {
				return nil, err
			}
			out.overrides = append(out.overrides, o)
		}
		for _, i := range variants.Unmatched(out.options, out.overrides) {
			v.Add(fmt.Sprintf("variants[%d].values", i), "unknown_combination")
		}
	}
	return out, invalid(v)
}

func parseOverride(i int, vi VariantInput, v validation.Violations) (variants.Override, error) {
	field := func(name string) string { return fmt.Sprintf("variants[%d].%s", i, name) }
	values := make(map[string]string, len(vi.Values))
	for k, val := range vi.Values {
		values[strings.TrimSpace(k)] = strings.TrimSpace(val)
	}
	o := variants.Override{Values: values, SKU: strings.TrimSpace(vi.SKU), IsActive: vi.IsActive}
	if strings.TrimSpace(vi.Price) != "" {
		p, err := variants.ParseFloat(field("price"), vi.Price)
		if err != nil {
			return o, err
		}
		validation.NonNegativeFloat(field("price"), p, v)
		o.Price = &p
	}
	if strings.TrimSpace(vi.TaxRate) != "" {
		r, err := variants.ParseFloat(field("tax_rate"), vi.TaxRate)
		if err != nil {
			return o, err
		}
		validation.RangeFloat(field("tax_rate"), r, 0, 100, v)
		o.TaxRate = &r
	}
	return o, nil
}

func (in ProductInput) apply(p *models.Product, pp *parsedProduct) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = pp.price
	p.TaxRate = pp.taxRate
	p.Category = strings.TrimSpace(in.Category)
	p.IsActive = in.IsActive
	p.HasVariants = in.HasVariants
}

// Create stores a product. Without an explicit SKU one is derived from the
// name. With variants enabled the option set and every combination are
// generated in the same transaction.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	pp, err := s.parse(in)
	if err != nil {
		return nil, err
	}
	var id uint
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		p := &models.Product{}
		in.apply(p, pp)
		if err := assignSKU(ctx, tx, p, in.SKU); err != nil {
			return err
		}
		if err := tx.CreateProduct(ctx, p); err != nil {
			return err
		}
		id = p.ID
		return replaceVariants(ctx, tx, p, pp)
	})
	if err != nil {
		return nil, err
	}
	return s.Store.GetProduct(ctx, id)
}

// Update rewrites a product. Its options, option values and variants are
// always fully replaced from the submitted state, so variant ids do not
// survive an edit.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	pp, err := s.parse(in)
	if err != nil {
		return nil, err
	}
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		p, err := tx.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		in.apply(p, pp)
		if strings.TrimSpace(in.SKU) != "" || p.SKU == nil {
			if err := assignSKU(ctx, tx, p, in.SKU); err != nil {
				return err
			}
		}
		p.Options, p.Variants = nil, nil
		if err := tx.UpdateProduct(ctx, p); err != nil {
			return err
		}
		return replaceVariants(ctx, tx, p, pp)
	})
	if err != nil {
		return nil, err
	}
	return s.Store.GetProduct(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.Store.DeleteProduct(ctx, id)
}

// assignSKU keeps an explicit SKU verbatim and otherwise generates one from
// the product name.
func assignSKU(ctx context.Context, tx *store.Store, p *models.Product, explicit string) error {
	if sku := strings.TrimSpace(explicit); sku != "" {
		p.SKU = &sku
		return nil
	}
	sku, err := variants.GenerateProductSKU(ctx, p.Name, tx.ProductSKUExists)
	if err != nil {
		return err
	}
	p.SKU = &sku
	return nil
}

func replaceVariants(ctx context.Context, tx *store.Store, p *models.Product, pp *parsedProduct) error {
	if !p.HasVariants {
		_, err := tx.ReplaceVariantSet(ctx, p.ID, nil, nil)
		return err
	}
	options := make([]models.ProductOption, len(pp.options))
	for i, o := range pp.options {
		values := make([]models.ProductOptionValue, len(o.Values))
		for j, val := range o.Values {
			values[j] = models.ProductOptionValue{Value: val, DisplayOrder: j}
		}
		options[i] = models.ProductOption{Name: o.Name, DisplayOrder: i, Values: values}
	}
	defaults := variants.Defaults{ProductID: p.ID, ProductSKU: p.SKUValue(), Price: p.Price}
	_, err := tx.ReplaceVariantSet(ctx, p.ID, options, func(ctx context.Context, exists func(context.Context, string) (bool, error)) ([]models.ProductVariant, error) {
		planned, err := variants.Build(ctx, pp.options, defaults, pp.overrides, exists)
		if err != nil {
			return nil, err
		}
		rows := make([]models.ProductVariant, len(planned))
		for i, pl := range planned {
			rows[i] = models.ProductVariant{SKU: pl.SKU, Price: pl.Price, TaxRate: pl.TaxRate, IsActive: pl.IsActive}
			if err := rows[i].SetValues(pl.Combination.Map()); err != nil {
				return nil, err
			}
		}
		return rows, nil
	})
	return err
}
