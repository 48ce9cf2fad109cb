package variants

import "context"

// Override customises the variant generated at one coordinate. Values is
// matched against the coordinate mapping; unset fields fall back to the
// product defaults.
type Override struct {
	Values   map[string]string
	SKU      string
	Price    *float64
	TaxRate  *float64
	IsActive *bool
}

// Planned is a variant ready to be persisted.
type Planned struct {
	Combination Combination
	SKU         string
	Price       float64
	TaxRate     *float64
	IsActive    bool
}

// Defaults are applied to every generated variant without an override.
type Defaults struct {
	ProductID  uint
	ProductSKU string
	Price      float64
}

// Build expands opts into one Planned variant per combination, in odometer
// order. Explicit override SKUs are kept verbatim and reserved first so that
// generated SKUs never reuse them; generated SKUs are also unique within the
// batch.
func Build(ctx context.Context, opts []Option, d Defaults, overrides []Override, exists ExistsFunc) ([]Planned, error) {
	combos := Combinations(opts)
	if len(combos) == 0 {
		return nil, nil
	}

	byKey := make(map[string]Override, len(overrides))
	for _, o := range overrides {
		byKey[key(o.Values)] = o
	}

	batch := make(map[string]struct{}, len(combos))
	for _, c := range combos {
		if o, ok := byKey[c.Key()]; ok && o.SKU != "" {
			batch[o.SKU] = struct{}{}
		}
	}
	taken := func(ctx context.Context, sku string) (bool, error) {
		if _, ok := batch[sku]; ok {
			return true, nil
		}
		return exists(ctx, sku)
	}

	base := VariantBase(d.ProductSKU, d.ProductID)
	out := make([]Planned, 0, len(combos))
	for _, c := range combos {
		p := Planned{Combination: c, Price: d.Price, IsActive: true}
		o, ok := byKey[c.Key()]
		if ok {
			if o.Price != nil {
				p.Price = *o.Price
			}
			p.TaxRate = o.TaxRate
			if o.IsActive != nil {
				p.IsActive = *o.IsActive
			}
			p.SKU = o.SKU
		}
		if p.SKU == "" {
			sku, err := GenerateVariantSKU(ctx, base, c, taken)
			if err != nil {
				return nil, err
			}
			batch[sku] = struct{}{}
			p.SKU = sku
		}
		out = append(out, p)
	}
	return out, nil
}

// Unmatched returns the indexes of overrides whose values do not name any
// combination of opts.
func Unmatched(opts []Option, overrides []Override) []int {
	keys := make(map[string]struct{})
	for _, c := range Combinations(opts) {
		keys[c.Key()] = struct{}{}
	}
	var out []int
	for i, o := range overrides {
		if _, ok := keys[key(o.Values)]; !ok {
			out = append(out, i)
		}
	}
	return out
}
