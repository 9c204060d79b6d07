package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"warehouse/infrastructure/session"
)

const (
	csrfHeaderName = "X-CSRF-Token"
	csrfFormField  = "_csrf"
	csrfTokenBytes = 32
)

// CSRFMiddleware guards the inventory commands with a double-submit token:
// every POST from the products page must echo the cookie value, which the
// page script copies into each form.
func (s *Server) CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, issued := csrfCookieToken(r)
		if issued {
			http.SetCookie(w, session.CSRFCookie(token, s.SessionTTL, r.TLS != nil))
		}
		if isSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		provided, source := submittedCSRFToken(r)
		if provided == "" || subtle.ConstantTimeCompare([]byte(token), []byte(provided)) != 1 {
			s.log.WithContext(r.Context()).Warnw("csrf check failed",
				"method", r.Method,
				"path", r.URL.Path,
				"token_source", source,
				"cookie_issued", issued,
			)
			http.Error(w, "invalid csrf token", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// csrfCookieToken returns the browser's token, or a new one when the cookie
// is missing. issued reports the latter.
func csrfCookieToken(r *http.Request) (token string, issued bool) {
	if c, err := r.Cookie(session.CSRFCookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v, false
		}
	}
	buf := make([]byte, csrfTokenBytes)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf), true
}

// submittedCSRFToken prefers the header (scripted requests) over the form
// field (plain product forms).
func submittedCSRFToken(r *http.Request) (token, source string) {
	if v := strings.TrimSpace(r.Header.Get(csrfHeaderName)); v != "" {
		return v, "header"
	}
	if v := strings.TrimSpace(r.FormValue(csrfFormField)); v != "" {
		return v, "form"
	}
	return "", "missing"
}
