package products

import (
	"cmp"
	"slices"
	"strings"

	"warehouse/models"
)

// SortMode selects the ordering of the product table.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortStockAsc  SortMode = "stock-asc"
	SortStockDesc SortMode = "stock-desc"
)

// SortModes lists the modes in dropdown order.
var SortModes = []SortMode{SortDefault, SortPriceAsc, SortPriceDesc, SortStockAsc, SortStockDesc}

// ParseSortMode maps unknown input to SortDefault.
func ParseSortMode(raw string) SortMode {
	mode := SortMode(strings.ToLower(strings.TrimSpace(raw)))
	for _, m := range SortModes {
		if m == mode {
			return m
		}
	}
	return SortDefault
}

// Label is the dropdown text for the mode.
func (m SortMode) Label() string {
	switch m {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortStockAsc:
		return "Stock: Low to High"
	case SortStockDesc:
		return "Stock: High to Low"
	default:
		return "Sort by..."
	}
}

// SortProducts returns items ordered by mode. SortDefault returns the input
// slice itself; every other mode sorts a copy. Missing prices and quantities
// sort as zero. Equal keys keep their input order.
func SortProducts(items []models.Product, mode SortMode) []models.Product {
	compare := comparator(mode)
	if compare == nil {
		return items
	}
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(mode SortMode) func(a, b models.Product) int {
	switch mode {
	case SortPriceAsc:
		return comparePrice
	case SortPriceDesc:
		return func(a, b models.Product) int { return comparePrice(b, a) }
	case SortStockAsc:
		return compareQuantity
	case SortStockDesc:
		return func(a, b models.Product) int { return compareQuantity(b, a) }
	default:
		return nil
	}
}

func comparePrice(a, b models.Product) int {
	return a.PriceOrZero().Cmp(b.PriceOrZero())
}

func compareQuantity(a, b models.Product) int {
	return cmp.Compare(a.QuantityOrZero(), b.QuantityOrZero())
}
