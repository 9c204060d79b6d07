package productstore

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"warehouse/models"
)

// productRequest is the create/update/patch body. An id in the body is ignored.
type productRequest struct {
	Name             *string          `json:"name"`
	StockKeepingUnit *string          `json:"stockKeepingUnit"`
	Location         *string          `json:"location"`
	Price            *decimal.Decimal `json:"price"`
	Quantity         *int64           `json:"quantity"`
}

func (req productRequest) product(id int64) models.Product {
	return models.Product{
		ID:               id,
		Name:             req.Name,
		StockKeepingUnit: req.StockKeepingUnit,
		Location:         req.Location,
		Price:            req.Price,
		Quantity:         req.Quantity,
	}
}

// productResponse writes prices as JSON numbers.
type productResponse struct {
	ID               int64        `json:"id"`
	Name             *string      `json:"name"`
	StockKeepingUnit *string      `json:"stockKeepingUnit"`
	Location         *string      `json:"location"`
	Price            *json.Number `json:"price"`
	Quantity         *int64       `json:"quantity"`
}

func newProductResponse(p models.Product) productResponse {
	resp := productResponse{
		ID:               p.ID,
		Name:             p.Name,
		StockKeepingUnit: p.StockKeepingUnit,
		Location:         p.Location,
		Quantity:         p.Quantity,
	}
	if p.Price != nil {
		n := json.Number(p.Price.String())
		resp.Price = &n
	}
	return resp
}

func newProductResponses(items []models.Product) []productResponse {
	out := make([]productResponse, 0, len(items))
	for _, p := range items {
		out = append(out, newProductResponse(p))
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}
