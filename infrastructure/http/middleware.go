package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"warehouse/frontend/products"
	sessioncontext "warehouse/frontend/shared/context"
	"warehouse/infrastructure/session"
	"warehouse/pkg/logger"
)

// RequestLogger logs one entry per request and stores a request-scoped
// logger in the context.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			reqLog := log.WithContext(r.Context())
			next.ServeHTTP(ww, r.WithContext(logger.WithLogger(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			reqLog.Infow("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", status,
				"bytes", ww.BytesWritten(),
				"latency_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// ViewSessionMiddleware attaches the browser's inventory view session,
// creating one (and its cookie) on the first visit.
func (s *Server) ViewSessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := session.TokenFromRequest(r)
		var inv *products.Inventory
		if ok {
			inv, ok = s.Views.Find(token)
		}
		if !ok {
			token = session.NewToken()
			inv = products.NewInventory(s.Store, s.log)
			s.Views.Add(token, inv)
			s.log.WithContext(r.Context()).Debugw("view session created", "sessions", s.Views.Len())
		}
		// Sliding expiry, matching the cache idle timeout.
		http.SetCookie(w, session.ViewCookie(token, s.SessionTTL, r.TLS != nil))

		next.ServeHTTP(w, r.WithContext(sessioncontext.NewContextWithViewSession(r.Context(), inv)))
	})
}
