package products

import (
	"strings"

	"warehouse/models"
)

// FilterProducts keeps products whose name, SKU or location contains the
// query, case-insensitively. A blank query returns the input slice itself.
func FilterProducts(items []models.Product, query string) []models.Product {
	q := normalizeQuery(query)
	if q == "" {
		return items
	}
	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		if matchesQuery(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// matchesQuery expects q already normalized.
func matchesQuery(p models.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.NameOrEmpty()), q) ||
		strings.Contains(strings.ToLower(p.SKUOrEmpty()), q) ||
		strings.Contains(strings.ToLower(p.LocationOrEmpty()), q)
}
