package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"warehouse/infrastructure/session"
	"warehouse/pkg/logger"
)

func newCSRFHandler() http.Handler {
	s := &Server{log: logger.Nop(), SessionTTL: time.Hour}
	return s.CSRFMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	}))
}

func TestCSRFMiddlewareIssuesTokenForViewSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newCSRFHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	var issued *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CSRFCookieName {
			issued = c
		}
	}
	if issued == nil || len(issued.Value) != 2*csrfTokenBytes {
		t.Fatalf("expected csrf cookie to be issued, got %+v", issued)
	}
	if issued.MaxAge != 3600 || issued.HttpOnly {
		t.Fatalf("expected script-readable cookie living as long as the view session, got %+v", issued)
	}
}

func TestCSRFMiddlewareChecksProductCommands(t *testing.T) {
	h := newCSRFHandler()
	cookie := &http.Cookie{Name: session.CSRFCookieName, Value: "tok-1"}

	tests := []struct {
		name   string
		header string
		form   url.Values
		want   int
	}{
		{name: "form field", form: url.Values{"_csrf": {"tok-1"}, "query": {"widget"}}, want: http.StatusSeeOther},
		{name: "header", header: "tok-1", want: http.StatusSeeOther},
		{name: "missing", form: url.Values{"query": {"widget"}}, want: http.StatusForbidden},
		{name: "mismatch", form: url.Values{"_csrf": {"tok-2"}}, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/products/search", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.header != "" {
				req.Header.Set(csrfHeaderName, tt.header)
			}
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatalf("expected existing token to be kept")
			}
		})
	}
}
