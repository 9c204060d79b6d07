package productstore

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"warehouse/pkg/logger"
)

const maxBodyBytes = 1 << 20

// RegisterRoutes mounts the products JSON API under /api/products.
func RegisterRoutes(r chi.Router, repo *Repository) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", ListProductsQueryHandler(repo))
		r.Post("/", CreateProductCommandHandler(repo))
		r.Get("/{id}", GetProductQueryHandler(repo))
		r.Put("/{id}", UpdateProductCommandHandler(repo))
		r.Patch("/{id}", PatchProductCommandHandler(repo))
		r.Delete("/{id}", DeleteProductCommandHandler(repo))
	})
}

func ListProductsQueryHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := repo.List(r.Context())
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newProductResponses(items))
	}
}

func GetProductQueryHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(w, r)
		if !ok {
			return
		}
		p, err := repo.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newProductResponse(p))
	}
}

func CreateProductCommandHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeProduct(w, r)
		if !ok {
			return
		}
		created, err := repo.Create(r.Context(), actor(r), req.product(0))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, newProductResponse(created))
	}
}

func UpdateProductCommandHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(w, r)
		if !ok {
			return
		}
		req, ok := decodeProduct(w, r)
		if !ok {
			return
		}
		updated, err := repo.Update(r.Context(), actor(r), req.product(id))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newProductResponse(updated))
	}
}

func PatchProductCommandHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(w, r)
		if !ok {
			return
		}
		req, ok := decodeProduct(w, r)
		if !ok {
			return
		}
		patched, err := repo.Patch(r.Context(), actor(r), req.product(id))
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newProductResponse(patched))
	}
}

func DeleteProductCommandHandler(repo *Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := productID(w, r)
		if !ok {
			return
		}
		if err := repo.Delete(r.Context(), actor(r), id); err != nil {
			writeStoreError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return 0, false
	}
	return id, true
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (productRequest, bool) {
	var req productRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return productRequest{}, false
	}
	return req, true
}

// actor attributes audit rows to the request id.
func actor(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	logger.FromContext(r.Context()).Errorw("products store failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
