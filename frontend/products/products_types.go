package products

import (
	"strconv"

	"warehouse/frontend/shared/nav"
	"warehouse/models"
)

// PageData is everything the products page renders.
type PageData struct {
	Top      nav.TopNavData
	Snapshot Snapshot
}

// ProductRow is one table row with its display values.
type ProductRow struct {
	Number   int
	ID       int64
	Name     string
	SKU      string
	Location string
	Price    string
	Quantity string
}

func newProductRows(l Listing) []ProductRow {
	rows := make([]ProductRow, 0, len(l.Items))
	first := l.FirstRowNumber()
	for i, p := range l.Items {
		rows = append(rows, ProductRow{
			Number:   first + i,
			ID:       p.ID,
			Name:     orDash(p.NameOrEmpty()),
			SKU:      orDash(p.SKUOrEmpty()),
			Location: orDash(p.LocationOrEmpty()),
			Price:    formatPrice(p),
			Quantity: formatQuantity(p),
		})
	}
	return rows
}

func formatPrice(p models.Product) string {
	if p.Price == nil {
		return "-"
	}
	return p.Price.StringFixed(2)
}

func formatQuantity(p models.Product) string {
	if p.Quantity == nil {
		return "-"
	}
	return strconv.FormatInt(*p.Quantity, 10)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
