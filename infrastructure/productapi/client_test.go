package productapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"warehouse/models"
	"warehouse/pkg/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", WithLogger(logger.Nop()))
}

func TestListAll_DecodesProducts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/products" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `[{"id":1,"name":"Widget","stockKeepingUnit":"W-1","location":null,"price":19.99,"quantity":4},{"id":2}]`)
	})

	items, err := c.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 products, got %d", len(items))
	}
	if items[0].SKUOrEmpty() != "W-1" || items[0].Location != nil || !items[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("unexpected first product %+v", items[0])
	}
	if items[1].Name != nil || items[1].Price != nil || items[1].Quantity != nil {
		t.Fatalf("expected missing fields to stay nil, got %+v", items[1])
	}
}

func TestListAll_NullBodyIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})
	items, err := c.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestCreate_SendsPayloadWithoutID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/products" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if _, ok := body["id"]; ok {
			t.Errorf("expected no id in create payload")
		}
		if string(body["price"]) != "2.5" {
			t.Errorf("expected numeric price, got %s", body["price"])
		}
		if string(body["location"]) != "null" {
			t.Errorf("expected null location, got %s", body["location"])
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":42,"name":"Widget","price":2.5}`)
	})

	name := "Widget"
	price := decimal.RequireFromString("2.50")
	created, err := c.Create(context.Background(), models.Product{ID: 9, Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 42 || created.NameOrEmpty() != "Widget" {
		t.Fatalf("unexpected created product %+v", created)
	}
}

func TestUpdate_PutsToProductPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/products/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"id":7,"name":"Gadget"}`)
	})
	name := "Gadget"
	updated, err := c.Update(context.Background(), models.Product{ID: 7, Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ID != 7 {
		t.Fatalf("unexpected updated product %+v", updated)
	}
}

func TestDelete_IgnoresBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/products/3" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `not json`)
	})
	if err := c.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}

func TestNon2xxBecomesRequestError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"product not found"}`)
	})

	err := c.Delete(context.Background(), 3)
	if !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	var re *RequestError
	if !errors.As(err, &re) || re.Op != "delete" || re.Message != "product not found" {
		t.Fatalf("unexpected request error %#v", err)
	}
	if got := err.Error(); got != "delete products: backend returned 404: product not found" {
		t.Fatalf("unexpected error text %q", got)
	}
}

func TestPlainTextErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database is locked", http.StatusInternalServerError)
	})
	_, err := c.ListAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "500: database is locked") {
		t.Fatalf("expected backend message in error, got %v", err)
	}
	if IsNotFound(err) {
		t.Fatalf("500 must not be reported as not found")
	}
}

func TestForwardsRequestID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(middleware.RequestIDHeader); got != "req-123" {
			t.Errorf("expected forwarded request id, got %q", got)
		}
		_, _ = io.WriteString(w, `[]`)
	})
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	if _, err := c.ListAll(ctx); err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, WithLogger(logger.Nop()))
	_, err := c.ListAll(context.Background())
	var re *RequestError
	if !errors.As(err, &re) || re.StatusCode != 0 || re.Err == nil {
		t.Fatalf("expected transport request error, got %#v", err)
	}
}
