package products

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	sessioncontext "warehouse/frontend/shared/context"
	"warehouse/frontend/shared/nav"
	"warehouse/models"
	"warehouse/pkg/logger"
)

const productsPath = "/products"

// ProductsPageQueryHandler renders the inventory screen. The first render of
// a view session performs the initial fetch.
func ProductsPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		// A failed load is reported through the notice banner.
		_ = inv.EnsureLoaded(r.Context())

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProductsPage(PageData{
			Top:      nav.BuildTopNavData(productsPath),
			Snapshot: inv.TakeSnapshot(),
		}).Render(r.Context(), w); err != nil {
			logger.FromContext(r.Context()).Errorw("render products page failed", "err", err)
			http.Error(w, "failed to render products page", http.StatusInternalServerError)
			return
		}
	}
}

// SearchCommandHandler sets the search text.
func SearchCommandHandler() http.HandlerFunc {
	return dispatchHandler(func(r *http.Request) (Action, error) {
		return SetQuery{Query: r.PostFormValue("query")}, nil
	})
}

// SortCommandHandler sets the sort mode. Unknown modes fall back to default.
func SortCommandHandler() http.HandlerFunc {
	return dispatchHandler(func(r *http.Request) (Action, error) {
		return SetSort{Mode: ParseSortMode(r.PostFormValue("sort"))}, nil
	})
}

// PageCommandHandler moves to the posted page.
func PageCommandHandler() http.HandlerFunc {
	return dispatchHandler(func(r *http.Request) (Action, error) {
		page, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("page")))
		if err != nil {
			return nil, fmt.Errorf("invalid page")
		}
		return GoToPage{Page: page}, nil
	})
}

// OpenAddModalCommandHandler opens an empty add dialog.
func OpenAddModalCommandHandler() http.HandlerFunc {
	return dispatchHandler(func(*http.Request) (Action, error) {
		return OpenModal{Modal: AddModal()}, nil
	})
}

// CloseModalCommandHandler closes whatever dialog is open.
func CloseModalCommandHandler() http.HandlerFunc {
	return dispatchHandler(func(*http.Request) (Action, error) {
		return CloseModal{}, nil
	})
}

// OpenProductModalCommandHandler opens the edit, details or delete dialog for
// one product of the cached list.
func OpenProductModalCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		p, found := inv.Find(id)
		if !found {
			inv.Dispatch(SetNotice{Notice{Level: NoticeError, Message: fmt.Sprintf("Product #%d is no longer listed", id)}})
			redirectToProducts(w, r)
			return
		}
		modal, err := ParseTargetModal(chi.URLParam(r, "kind"), p)
		if err != nil {
			http.Error(w, "unknown dialog", http.StatusNotFound)
			return
		}
		inv.Dispatch(OpenModal{Modal: modal})
		redirectToProducts(w, r)
	}
}

// CreateProductCommandHandler submits the add dialog.
func CreateProductCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		form := ProductFormFromValues(r.PostForm)
		p, err := form.Product(0)
		if err != nil {
			rejectForm(inv, AddModal().WithForm(form), err)
			redirectToProducts(w, r)
			return
		}
		if err := inv.AddProduct(r.Context(), p); err != nil {
			inv.Dispatch(OpenModal{Modal: AddModal().WithForm(form)})
		}
		redirectToProducts(w, r)
	}
}

// UpdateProductCommandHandler submits the edit dialog.
func UpdateProductCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		form := ProductFormFromValues(r.PostForm)
		target, found := inv.Find(id)
		if !found {
			target = models.Product{ID: id}
		}
		editing := EditModal(target).WithForm(form)

		p, err := form.Product(id)
		if err != nil {
			rejectForm(inv, editing, err)
			redirectToProducts(w, r)
			return
		}
		if err := inv.EditProduct(r.Context(), p); err != nil {
			inv.Dispatch(OpenModal{Modal: editing})
		}
		redirectToProducts(w, r)
	}
}

// DeleteProductCommandHandler confirms the delete dialog.
func DeleteProductCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		p, found := inv.Find(id)
		if !found {
			p = models.Product{ID: id}
		}
		// Failures are shown through the notice banner.
		_ = inv.DeleteProduct(r.Context(), p)
		redirectToProducts(w, r)
	}
}

// RefreshCommandHandler reloads the list from the backend.
func RefreshCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		_ = inv.Refresh(r.Context())
		redirectToProducts(w, r)
	}
}

// ExportCSVQueryHandler downloads every product matching the current search,
// in the current sort order.
func ExportCSVQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		if err := inv.EnsureLoaded(r.Context()); err != nil {
			http.Error(w, "failed to load products", http.StatusBadGateway)
			return
		}
		snap := inv.Snapshot()
		var buf bytes.Buffer
		if err := writeProductsCSV(&buf, snap.Listing.Sorted); err != nil {
			logger.FromContext(r.Context()).Errorw("write products csv failed", "err", err)
			http.Error(w, "failed to export csv", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Disposition", "attachment; filename=products.csv")
		writeWithETag(w, r, "text/csv", buf.Bytes())
	}
}

// ProductLabelQueryHandler renders a printable shelf label for one product.
func ProductLabelQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		id, err := productIDParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		_ = inv.EnsureLoaded(r.Context())
		p, found := inv.Find(id)
		if !found {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		pdfBytes, _, err := renderProductLabelPDF(p, time.Now())
		if err != nil {
			logger.FromContext(r.Context()).Errorw("render product label failed", "product_id", id, "err", err)
			http.Error(w, "failed to build label pdf", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=product-%d-label.pdf", id))
		_, _ = w.Write(pdfBytes)
	}
}

// dispatchHandler applies the action built from the request and redirects
// back to the page.
func dispatchHandler(build func(r *http.Request) (Action, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inv, ok := inventoryFromRequest(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		action, err := build(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		inv.Dispatch(action)
		redirectToProducts(w, r)
	}
}

func rejectForm(inv *Inventory, modal Modal, err error) {
	inv.Dispatch(OpenModal{Modal: modal})
	inv.Dispatch(SetNotice{Notice{Level: NoticeError, Message: "Check the form: " + err.Error()}})
}

func inventoryFromRequest(w http.ResponseWriter, r *http.Request) (*Inventory, bool) {
	inv, ok := sessioncontext.GetViewSessionFromContext[*Inventory](r.Context())
	if !ok || inv == nil {
		http.Error(w, "view session missing", http.StatusInternalServerError)
		return nil, false
	}
	return inv, true
}

func productIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

func redirectToProducts(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, productsPath, http.StatusSeeOther)
}
