package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse/frontend/products"
	"warehouse/infrastructure/cache"
	"warehouse/infrastructure/config"
	httpserver "warehouse/infrastructure/http"
	"warehouse/infrastructure/productapi"
	"warehouse/pkg/logger"
)

const sweepInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	backendURL, err := url.Parse(cfg.ProductsAPIURL)
	if err != nil {
		log.Fatalw("invalid PRODUCTS_API_URL", "url", cfg.ProductsAPIURL, "err", err)
	}

	client := productapi.NewClient(cfg.ProductsAPIURL,
		productapi.WithTimeout(cfg.HTTPClientTimeout),
		productapi.WithLogger(log),
	)
	views := cache.NewViewCache[*products.Inventory](cfg.ViewSessionTTL)

	server := httpserver.NewServer(httpserver.UIConfig{
		Addr:       cfg.AppAddr,
		Store:      client,
		Views:      views,
		SessionTTL: cfg.ViewSessionTTL,
		BackendURL: backendURL,
		Logger:     log,
	})
	if err := server.Start(); err != nil {
		log.Fatalw("start server", "err", err)
	}
	log.Infow("warehouse listening", "addr", cfg.AppAddr, "products_api", cfg.ProductsAPIURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sweepViewSessions(ctx, views, log)
	<-ctx.Done()

	if err := server.Stop(); err != nil {
		log.Errorw("graceful shutdown error", "err", err)
	}
}

// sweepViewSessions drops idle view sessions until ctx is done.
func sweepViewSessions(ctx context.Context, views *cache.ViewCache[*products.Inventory], log *logger.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := views.Sweep(); removed > 0 {
				log.Debugw("expired view sessions removed", "removed", removed, "remaining", views.Len())
			}
		}
	}
}
