package http

import (
	"github.com/go-chi/chi/v5"

	"warehouse/frontend/help"
	"warehouse/frontend/products"
)

// RegisterProductRoutes registers the inventory screen, its commands and the help page.
func (s *Server) RegisterProductRoutes(r chi.Router) {
	r.Get("/products", products.ProductsPageQueryHandler())
	r.Get("/products/export.csv", products.ExportCSVQueryHandler())
	r.Get("/products/{id}/label.pdf", products.ProductLabelQueryHandler())

	r.Post("/products/search", products.SearchCommandHandler())
	r.Post("/products/sort", products.SortCommandHandler())
	r.Post("/products/page", products.PageCommandHandler())
	r.Post("/products/refresh", products.RefreshCommandHandler())

	r.Post("/products/modal/add", products.OpenAddModalCommandHandler())
	r.Post("/products/modal/close", products.CloseModalCommandHandler())
	r.Post("/products/{id}/modal/{kind}", products.OpenProductModalCommandHandler())

	r.Post("/products", products.CreateProductCommandHandler())
	r.Post("/products/{id}", products.UpdateProductCommandHandler())
	r.Post("/products/{id}/delete", products.DeleteProductCommandHandler())

	r.Get("/help", help.HelpPageQueryHandler())
}
