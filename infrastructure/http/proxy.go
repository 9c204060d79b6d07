package http

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"

	"warehouse/pkg/logger"
)

// newBackendProxy forwards /api/* to the products backend unchanged.
func newBackendProxy(target *url.URL, log *logger.Logger) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.WithContext(r.Context()).Warnw("products backend unreachable", "target", target.String(), "path", r.URL.Path, "err", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "products backend unavailable"})
	}
	return proxy
}
