package products

import (
	"encoding/csv"
	"io"
	"strconv"

	"warehouse/models"
)

var exportHeader = []string{"row", "id", "name", "sku", "location", "price", "quantity"}

// writeProductsCSV writes items in the given order, one record per product.
// Missing values are written as empty cells.
func writeProductsCSV(w io.Writer, items []models.Product) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for i, p := range items {
		price := ""
		if p.Price != nil {
			price = p.Price.String()
		}
		qty := ""
		if p.Quantity != nil {
			qty = strconv.FormatInt(*p.Quantity, 10)
		}
		record := []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(p.ID, 10),
			p.NameOrEmpty(),
			p.SKUOrEmpty(),
			p.LocationOrEmpty(),
			price,
			qty,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
