package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"warehouse/models"
	"warehouse/pkg/logger"
)

const (
	productsPath = "/api/products"

	// maxErrorBody bounds how much of a failed response is read for its message.
	maxErrorBody = 4 << 10
)

// Client talks to the products REST backend. It never retries; every error
// is returned to the caller.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Logger = c.Logger.WithComponent("productapi")
	return c
}

// ListAll fetches every product.
func (c *Client) ListAll(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, "list", http.MethodGet, productsPath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}

// Create posts p without its id and returns the stored product.
func (c *Client) Create(ctx context.Context, p models.Product) (models.Product, error) {
	var created models.Product
	err := c.do(ctx, "create", http.MethodPost, productsPath, newProductPayload(p), &created)
	return created, err
}

// Update replaces the product with p.ID.
func (c *Client) Update(ctx context.Context, p models.Product) (models.Product, error) {
	var updated models.Product
	err := c.do(ctx, "update", http.MethodPut, productPath(p.ID), newProductPayload(p), &updated)
	return updated, err
}

// Delete removes the product with id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, productPath(id), nil, nil)
}

func productPath(id int64) string {
	return productsPath + "/" + strconv.FormatInt(id, 10)
}

// productPayload is a Product without its id, which the backend owns.
type productPayload struct {
	Name             *string `json:"name"`
	StockKeepingUnit *string `json:"stockKeepingUnit"`
	Location         *string `json:"location"`
	Price            any     `json:"price"`
	Quantity         *int64  `json:"quantity"`
}

func newProductPayload(p models.Product) productPayload {
	payload := productPayload{
		Name:             p.Name,
		StockKeepingUnit: p.StockKeepingUnit,
		Location:         p.Location,
		Quantity:         p.Quantity,
	}
	// Send prices as JSON numbers, not decimal's default quoted strings.
	if p.Price != nil {
		payload.Price = json.Number(p.Price.String())
	}
	return payload
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	url := c.BaseURL + path
	fail := func(status int, msg string, err error) error {
		return &RequestError{Op: op, Method: method, URL: url, StatusCode: status, Message: msg, Err: err}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fail(0, "", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := middleware.GetReqID(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.WithContext(ctx).Warnw("products request failed", "op", op, "method", method, "url", url, "err", err)
		return fail(0, "", err)
	}
	defer resp.Body.Close()
	c.Logger.WithContext(ctx).Debugw("products request", "op", op, "method", method, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, readErrorMessage(resp.Body), nil)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// readErrorMessage extracts {"error": "..."} or falls back to the raw text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
