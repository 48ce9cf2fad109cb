package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ErrVariantDataDecode reports a stored variant coordinate that is not a
// JSON object of option name to value.
var ErrVariantDataDecode = errors.New("variant_data_decode")

// Product is a sellable item. When HasVariants is set, price and SKU come
// from its variants; the first variant is the default representative.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string  `gorm:"size:200;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	SKU         *string `gorm:"size:100;uniqueIndex" json:"sku,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
	TaxRate     float64 `gorm:"not null;default:0" json:"tax_rate"`
	Category    string  `gorm:"size:100;index" json:"category,omitempty"`
	IsActive    bool    `gorm:"not null" json:"is_active"`
	HasVariants bool    `gorm:"not null;default:false" json:"has_variants"`

	Options  []ProductOption  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

// SKUValue returns the SKU or "".
func (p *Product) SKUValue() string {
	if p.SKU == nil {
		return ""
	}
	return *p.SKU
}

// DefaultVariant is the variant with the lowest id, or nil.
func (p *Product) DefaultVariant() *ProductVariant {
	if !p.HasVariants || len(p.Variants) == 0 {
		return nil
	}
	first := &p.Variants[0]
	for i := range p.Variants {
		if p.Variants[i].ID < first.ID {
			first = &p.Variants[i]
		}
	}
	return first
}

// EffectivePrice is the default variant's price for variant products.
func (p *Product) EffectivePrice() float64 {
	if v := p.DefaultVariant(); v != nil {
		return v.Price
	}
	return p.Price
}

// EffectiveSKU is the default variant's SKU for variant products.
func (p *Product) EffectiveSKU() string {
	if v := p.DefaultVariant(); v != nil {
		return v.SKU
	}
	return p.SKUValue()
}

// OptionNames returns option names in display order.
func (p *Product) OptionNames() []string {
	opts := make([]ProductOption, len(p.Options))
	copy(opts, p.Options)
	sort.SliceStable(opts, func(i, j int) bool { return opts[i].DisplayOrder < opts[j].DisplayOrder })
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return names
}

// VariantName renders "Product - v1 / v2" with values in option order.
func (p *Product) VariantName(v *ProductVariant) (string, error) {
	values, err := v.Values()
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return p.Name, nil
	}
	var parts []string
	used := make(map[string]bool, len(values))
	for _, name := range p.OptionNames() {
		if val, ok := values[name]; ok {
			parts = append(parts, val)
			used[name] = true
		}
	}
	var rest []string
	for name := range values {
		if !used[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		parts = append(parts, values[name])
	}
	return p.Name + " - " + strings.Join(parts, " / "), nil
}

// ProductOption is a named axis of variation.
type ProductOption struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ProductID    uint      `gorm:"index;not null" json:"product_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`

	Values []ProductOptionValue `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"values,omitempty"`
}

// ProductOptionValue is one setting of an option. DisplayOrder decides its
// position in the generated combinations.
type ProductOptionValue struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	OptionID     uint      `gorm:"index;not null" json:"option_id"`
	Value        string    `gorm:"size:100;not null" json:"value"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
}

// ProductVariant is one concrete combination of option values.
type ProductVariant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductID   uint           `gorm:"index;not null" json:"product_id"`
	SKU         string         `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	Price       float64        `gorm:"not null" json:"price"`
	TaxRate     *float64       `json:"tax_rate,omitempty"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	VariantData datatypes.JSON `json:"variant_data"`
}

// Values decodes the option-name to value mapping.
func (v *ProductVariant) Values() (map[string]string, error) {
	if len(v.VariantData) == 0 {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal(v.VariantData, &m); err != nil {
		return nil, fmt.Errorf("%w: variant %d: %v", ErrVariantDataDecode, v.ID, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

// SetValues encodes the coordinate mapping.
func (v *ProductVariant) SetValues(m map[string]string) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	v.VariantData = datatypes.JSON(b)
	return nil
}

// EffectiveTaxRate falls back to the product's rate when the variant has no
// override.
func (v *ProductVariant) EffectiveTaxRate(p *Product) float64 {
	if v.TaxRate != nil {
		return *v.TaxRate
	}
	return p.TaxRate
}
