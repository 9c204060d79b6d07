package productstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	repo, _ := newTestRepository(t)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	RegisterRoutes(r, repo)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestProductsAPILifecycle(t *testing.T) {
	ts := newTestAPI(t)
	base := ts.URL + "/api/products"

	resp := doJSON(t, http.MethodGet, base, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}
	var empty []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&empty); err != nil || len(empty) != 0 {
		t.Fatalf("expected empty JSON array, got %v (%v)", empty, err)
	}

	resp = doJSON(t, http.MethodPost, base, `{"id":7,"name":"Widget","stockKeepingUnit":"W-1","location":"A1","price":12.5,"quantity":3}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	var created map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created["price"] != 12.5 || created["stockKeepingUnit"] != "W-1" {
		t.Fatalf("unexpected created body: %v", created)
	}
	id := strconv.FormatInt(int64(created["id"].(float64)), 10)

	resp = doJSON(t, http.MethodPatch, base+"/"+id, `{"quantity":9}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d", resp.StatusCode)
	}
	var patched map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&patched); err != nil {
		t.Fatalf("decode patched: %v", err)
	}
	if patched["quantity"] != float64(9) || patched["name"] != "Widget" {
		t.Fatalf("unexpected patched body: %v", patched)
	}

	resp = doJSON(t, http.MethodPut, base+"/"+id, `{"name":"Widget v2","price":null}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put: expected 200, got %d", resp.StatusCode)
	}
	var replaced map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&replaced); err != nil {
		t.Fatalf("decode replaced: %v", err)
	}
	if replaced["price"] != nil || replaced["quantity"] != nil {
		t.Fatalf("expected nulls after full replace, got %v", replaced)
	}

	resp = doJSON(t, http.MethodDelete, base+"/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodDelete, base+"/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
	var errBody errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Error != ErrNotFound.Error() {
		t.Fatalf("expected not found error body, got %+v (%v)", errBody, err)
	}
}

func TestProductsAPIRejectsBadInput(t *testing.T) {
	ts := newTestAPI(t)
	base := ts.URL + "/api/products"

	if resp := doJSON(t, http.MethodPost, base, `{"name":`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed json: expected 400, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodPost, base, `{"price":"abc"}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad price: expected 400, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodPut, base+"/abc", `{}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad id: expected 400, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodPut, base+"/404", `{}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", resp.StatusCode)
	}
}
