package products

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"warehouse/models"
)

// ProductForm holds the raw add/edit inputs so a rejected form can be shown
// again with what the user typed.
type ProductForm struct {
	Name     string
	SKU      string
	Location string
	Price    string
	Quantity string
}

// ProductFormFromValues reads the posted add/edit form.
func ProductFormFromValues(v url.Values) ProductForm {
	return ProductForm{
		Name:     strings.TrimSpace(v.Get("name")),
		SKU:      strings.TrimSpace(v.Get("sku")),
		Location: strings.TrimSpace(v.Get("location")),
		Price:    strings.TrimSpace(v.Get("price")),
		Quantity: strings.TrimSpace(v.Get("quantity")),
	}
}

// ProductFormFrom pre-fills the edit form.
func ProductFormFrom(p models.Product) ProductForm {
	f := ProductForm{
		Name:     p.NameOrEmpty(),
		SKU:      p.SKUOrEmpty(),
		Location: p.LocationOrEmpty(),
	}
	if p.Price != nil {
		f.Price = p.Price.String()
	}
	if p.Quantity != nil {
		f.Quantity = strconv.FormatInt(*p.Quantity, 10)
	}
	return f
}

// Product converts the form. Blank inputs become null fields.
func (f ProductForm) Product(id int64) (models.Product, error) {
	p := models.Product{
		ID:               id,
		Name:             optionalString(f.Name),
		StockKeepingUnit: optionalString(f.SKU),
		Location:         optionalString(f.Location),
	}
	if f.Price != "" {
		price, err := decimal.NewFromString(f.Price)
		if err != nil {
			return models.Product{}, fmt.Errorf("invalid price %q", f.Price)
		}
		p.Price = &price
	}
	if f.Quantity != "" {
		qty, err := strconv.ParseInt(f.Quantity, 10, 64)
		if err != nil {
			return models.Product{}, fmt.Errorf("invalid quantity %q", f.Quantity)
		}
		p.Quantity = &qty
	}
	return p, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
