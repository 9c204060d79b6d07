package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "X-View-Session"

	// CSRFCookieName is read by the page script, so it is not HttpOnly.
	CSRFCookieName = "X-CSRF-Token"
)

// ViewCookie builds the view-session cookie. A negative maxAge clears it.
// secure is set when the request arrived over TLS.
func ViewCookie(value string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

// CSRFCookie carries the double-submit token for a view session. It lives as
// long as the view session so an open inventory page keeps working.
func CSRFCookie(value string, maxAge time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CSRFCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}

// NewToken returns a fresh random view-session token.
func NewToken() string {
	return uuid.NewString()
}

// TokenFromRequest returns the view-session token carried by r, if it is well formed.
func TokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(c.Value)
	if _, err := uuid.Parse(token); err != nil {
		return "", false
	}
	return token, true
}
