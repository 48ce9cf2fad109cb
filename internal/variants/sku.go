package variants

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const (
	baseSKULength   = 15
	valuePrefixLen  = 3
	fallbackSKUBase = "PROD"
)

// ExistsFunc reports whether a SKU is already taken.
type ExistsFunc func(ctx context.Context, sku string) (bool, error)

// BaseSKU keeps the letters and digits of name, upper-cased, truncated to
// 15 characters. Everything else is dropped, not replaced.
func BaseSKU(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteString(strings.ToUpper(string(r)))
		n++
		if n == baseSKULength {
			break
		}
	}
	return b.String()
}

// GenerateProductSKU derives a product SKU from its name and appends the
// first free three-digit counter starting at 001.
func GenerateProductSKU(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base := BaseSKU(name)
	if base == "" {
		base = fallbackSKUBase
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s%03d", base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// VariantBase is the prefix of generated variant SKUs: the product SKU, or
// PROD plus the zero-padded product id when the product has none.
func VariantBase(productSKU string, productID uint) string {
	if productSKU != "" {
		return productSKU
	}
	return fmt.Sprintf("%s%05d", fallbackSKUBase, productID)
}

// VariantSuffix joins the upper-cased first three characters of each value,
// in option order.
func VariantSuffix(c Combination) string {
	parts := make([]string, len(c))
	for i, co := range c {
		r := []rune(co.Value)
		if len(r) > valuePrefixLen {
			r = r[:valuePrefixLen]
		}
		parts[i] = strings.ToUpper(string(r))
	}
	return strings.Join(parts, "-")
}

// GenerateVariantSKU returns base-suffix, or base-suffix-n with the first n
// (from 1) that is free.
func GenerateVariantSKU(ctx context.Context, base string, c Combination, exists ExistsFunc) (string, error) {
	candidate := base
	if suffix := VariantSuffix(c); suffix != "" {
		candidate = base + "-" + suffix
	}
	taken, err := exists(ctx, candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	for n := 1; ; n++ {
		next := fmt.Sprintf("%s-%d", candidate, n)
		taken, err := exists(ctx, next)
		if err != nil {
			return "", err
		}
		if !taken {
			return next, nil
		}
	}
}

func key(m map[string]string) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, k := range names {
		b.WriteString(k)
		b.WriteByte('\x1f')
		b.WriteString(m[k])
		b.WriteByte('\x1e')
	}
	return b.String()
}
