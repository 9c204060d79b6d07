package http

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"warehouse/frontend/products"
	"warehouse/infrastructure/cache"
	"warehouse/infrastructure/productstore"
	"warehouse/infrastructure/sqlite"
	"warehouse/pkg/logger"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 2 * time.Second

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux
	log    *logger.Logger

	Store      products.ProductStore
	Views      *cache.ViewCache[*products.Inventory]
	SessionTTL time.Duration
}

// UIConfig wires the inventory UI server.
type UIConfig struct {
	Addr       string
	Store      products.ProductStore
	Views      *cache.ViewCache[*products.Inventory]
	SessionTTL time.Duration
	// BackendURL, when set, exposes the products API on the UI origin under /api.
	BackendURL *url.URL
	Logger     *logger.Logger
}

// NewServer creates the inventory UI server.
func NewServer(cfg UIConfig) *Server {
	s := newBaseServer(cfg.Addr, cfg.Logger, "ui")
	s.Store = cfg.Store
	s.Views = cfg.Views
	s.SessionTTL = cfg.SessionTTL
	if s.Views == nil {
		s.Views = cache.NewViewCache[*products.Inventory](cfg.SessionTTL)
	}

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/products", http.StatusSeeOther)
	})
	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeOK(w)
	})

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		s.log.Errorw("assets subfs init failed; serving fallback fs", "err", err)
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	if cfg.BackendURL != nil {
		s.router.Handle("/api/*", newBackendProxy(cfg.BackendURL, s.log))
	}

	s.router.Group(func(r chi.Router) {
		r.Use(s.CSRFMiddleware)
		r.Use(s.ViewSessionMiddleware)
		s.RegisterProductRoutes(r)
	})

	s.server.Handler = s.router
	return s
}

// NewAPIServer creates the reference products backend.
func NewAPIServer(addr string, db *sqlite.DB, repo *productstore.Repository, log *logger.Logger) *Server {
	s := newBaseServer(addr, log, "productsapi")

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			s.log.WithContext(r.Context()).Errorw("health check failed", "err", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		writeOK(w)
	})
	productstore.RegisterRoutes(s.router, repo)

	s.server.Handler = s.router
	return s
}

func newBaseServer(addr string, log *logger.Logger, component string) *Server {
	if log == nil {
		log = logger.Default()
	}
	log = log.WithComponent(component)
	s := &Server{
		Addr:   addr,
		router: chi.NewRouter(),
		log:    log,
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.RequestID)
	s.router.Use(RequestLogger(log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.log.Errorw("http server stopped", "addr", s.Addr, "err", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.ln = nil
	return nil
}
