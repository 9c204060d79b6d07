package products

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	sessioncontext "warehouse/frontend/shared/context"
	"warehouse/models"
	"warehouse/pkg/logger"
)

func newTestRouter(inv *Inventory) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if inv != nil {
				req = req.WithContext(sessioncontext.NewContextWithViewSession(req.Context(), inv))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/products", ProductsPageQueryHandler())
	r.Get("/products/export.csv", ExportCSVQueryHandler())
	r.Get("/products/{id}/label.pdf", ProductLabelQueryHandler())
	r.Post("/products/search", SearchCommandHandler())
	r.Post("/products/sort", SortCommandHandler())
	r.Post("/products/page", PageCommandHandler())
	r.Post("/products/refresh", RefreshCommandHandler())
	r.Post("/products/modal/add", OpenAddModalCommandHandler())
	r.Post("/products/modal/close", CloseModalCommandHandler())
	r.Post("/products/{id}/modal/{kind}", OpenProductModalCommandHandler())
	r.Post("/products", CreateProductCommandHandler())
	r.Post("/products/{id}", UpdateProductCommandHandler())
	r.Post("/products/{id}/delete", DeleteProductCommandHandler())
	return r
}

func postTo(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getFrom(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestProductsPageQueryHandler_RendersListing(t *testing.T) {
	store := newFakeStore(
		product(1, "Widget", "W-1", "Aisle 1"),
		models.Product{ID: 2, Name: strPtr("<script>x</script>"), Price: decPtr("4.5"), Quantity: int64Ptr(3)},
	)
	inv := NewInventory(store, logger.Nop())
	h := newTestRouter(inv)

	rec := getFrom(t, h, "/products")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Warehouse Management",
		"2 of 2 items listed",
		`placeholder="Search name, SKU, or location…"`,
		"W-1",
		"4.50",
		"&lt;script&gt;x&lt;/script&gt;",
		`<option value="default" selected>Sort by...</option>`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
	if strings.Contains(body, "<script>x</script>") {
		t.Fatalf("product names must be escaped")
	}
	if strings.Contains(body, `aria-label="Pagination"`) {
		t.Fatalf("expected pagination hidden for one page")
	}
}

func TestCommandHandlers_UpdateViewState(t *testing.T) {
	inv := NewInventory(newFakeStore(numberedProducts(25)...), logger.Nop())
	h := newTestRouter(inv)
	_ = getFrom(t, h, "/products")

	rec := postTo(t, h, "/products/page", url.Values{"page": {"3"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/products" {
		t.Fatalf("expected redirect to /products, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if inv.Snapshot().State.CurrentPage != 3 {
		t.Fatalf("expected page 3")
	}
	body := getFrom(t, h, "/products").Body.String()
	if !strings.Contains(body, "<td>21</td>") || !strings.Contains(body, `class="pagination-btn active" type="submit">3</button>`) {
		t.Fatalf("expected third page rendered with active label")
	}

	postTo(t, h, "/products/search", url.Values{"query": {"item 1"}})
	snap := inv.Snapshot()
	if snap.State.CurrentPage != 1 || snap.State.Query != "item 1" {
		t.Fatalf("expected search to reset page, got %+v", snap.State)
	}

	postTo(t, h, "/products/sort", url.Values{"sort": {"price-desc"}})
	if inv.Snapshot().State.SortBy != SortPriceDesc {
		t.Fatalf("expected price-desc sort")
	}

	if rec := postTo(t, h, "/products/page", url.Values{"page": {"two"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid page, got %d", rec.Code)
	}
}

func TestModalHandlers(t *testing.T) {
	inv := NewInventory(newFakeStore(models.Product{ID: 5, Name: strPtr("Widget"), StockKeepingUnit: strPtr("W-5"), Quantity: int64Ptr(8)}), logger.Nop())
	h := newTestRouter(inv)
	_ = getFrom(t, h, "/products")

	postTo(t, h, "/products/5/modal/delete", nil)
	body := getFrom(t, h, "/products").Body.String()
	if !strings.Contains(body, "Confirm Delete Widget") || !strings.Contains(body, "WARNING: This product has 8 units in stock!") {
		t.Fatalf("expected delete confirmation with stock warning")
	}

	postTo(t, h, "/products/5/modal/details", nil)
	if inv.Snapshot().State.Modal.Kind != ModalDetails {
		t.Fatalf("expected details dialog to replace confirmation")
	}
	postTo(t, h, "/products/modal/close", nil)
	if inv.Snapshot().State.Modal.Open() {
		t.Fatalf("expected dialog closed")
	}

	if rec := postTo(t, h, "/products/5/modal/archive", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown dialog, got %d", rec.Code)
	}
	postTo(t, h, "/products/77/modal/edit", nil)
	if snap := inv.Snapshot(); snap.State.Modal.Open() || !strings.Contains(snap.State.Notice.Message, "#77") {
		t.Fatalf("expected notice for unknown product, got %+v", snap.State)
	}
}

func TestCreateProductCommandHandler_InvalidInputKeepsForm(t *testing.T) {
	store := newFakeStore()
	inv := NewInventory(store, logger.Nop())
	h := newTestRouter(inv)
	_ = getFrom(t, h, "/products")

	postTo(t, h, "/products", url.Values{"name": {"Widget"}, "price": {"cheap"}})
	snap := inv.Snapshot()
	if snap.State.Modal.Kind != ModalAdd || snap.State.Modal.Form.Name != "Widget" {
		t.Fatalf("expected add dialog with typed input, got %+v", snap.State.Modal)
	}
	if !strings.Contains(snap.State.Notice.Message, `invalid price "cheap"`) {
		t.Fatalf("unexpected notice: %+v", snap.State.Notice)
	}
	if len(store.items) != 0 {
		t.Fatalf("expected no backend call for invalid input")
	}

	postTo(t, h, "/products", url.Values{"name": {"Widget"}, "price": {"3.5"}, "quantity": {"2"}})
	snap = inv.Snapshot()
	if snap.State.Modal.Open() || snap.Listing.TotalCount != 1 {
		t.Fatalf("expected product created and dialog closed, got %+v", snap.State)
	}
}

func TestUpdateAndDeleteCommandHandlers(t *testing.T) {
	store := newFakeStore(product(1, "Widget", "W-1", "A1"), product(2, "Gadget", "G-2", "A2"))
	inv := NewInventory(store, logger.Nop())
	h := newTestRouter(inv)
	_ = getFrom(t, h, "/products")

	postTo(t, h, "/products/2", url.Values{"name": {"Gadget Pro"}, "sku": {"G-2"}, "location": {"B1"}})
	if p, _ := inv.Find(2); p.NameOrEmpty() != "Gadget Pro" || p.LocationOrEmpty() != "B1" {
		t.Fatalf("expected product 2 updated, got %+v", p)
	}

	postTo(t, h, "/products/1/delete", nil)
	if _, found := inv.Find(1); found {
		t.Fatalf("expected product 1 gone after reconcile")
	}
	if msg := inv.Snapshot().State.Notice.Message; msg != "Product deleted: Widget" {
		t.Fatalf("unexpected notice %q", msg)
	}

	if rec := postTo(t, h, "/products/abc/delete", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
	}
}

func TestExportAndLabelHandlers(t *testing.T) {
	store := newFakeStore(
		models.Product{ID: 1, Name: strPtr("Widget"), StockKeepingUnit: strPtr("W-1"), Price: decPtr("2"), Quantity: int64Ptr(1)},
		models.Product{ID: 2, Name: strPtr("Gadget"), Price: decPtr("9.99")},
	)
	inv := NewInventory(store, logger.Nop())
	h := newTestRouter(inv)
	inv.Dispatch(SetSort{Mode: SortPriceDesc})

	rec := getFrom(t, h, "/products/export.csv")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "text/csv" {
		t.Fatalf("unexpected export response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	want := "row,id,name,sku,location,price,quantity\n1,2,Gadget,,,9.99,\n2,1,Widget,W-1,,2,1\n"
	if rec.Body.String() != want {
		t.Fatalf("unexpected csv:\n%s", rec.Body.String())
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("expected export etag")
	}
	req := httptest.NewRequest(http.MethodGet, "/products/export.csv", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	h.ServeHTTP(cached, req)
	if cached.Code != http.StatusNotModified || cached.Body.Len() != 0 {
		t.Fatalf("expected 304 for unchanged export, got %d", cached.Code)
	}

	rec = getFrom(t, h, "/products/2/label.pdf")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected label response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	pdf, _ := io.ReadAll(rec.Body)
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf bytes")
	}
	if rec := getFrom(t, h, "/products/99/label.pdf"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
}

func TestHandlersRequireViewSession(t *testing.T) {
	h := newTestRouter(nil)
	if rec := getFrom(t, h, "/products"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without view session, got %d", rec.Code)
	}
}
