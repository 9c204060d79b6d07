package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"warehouse/infrastructure/audit"
	"warehouse/infrastructure/config"
	httpserver "warehouse/infrastructure/http"
	"warehouse/infrastructure/productstore"
	"warehouse/infrastructure/sqlite"
	"warehouse/pkg/logger"
)

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

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalw("open db", "path", cfg.SQLitePath, "err", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, os.Getenv("MIGRATIONS_DIR")); err != nil {
		log.Fatalw("apply migrations", "err", err)
	}

	repo := productstore.NewRepository(db, audit.NewService())
	server := httpserver.NewAPIServer(cfg.ProductsAPIAddr, db, repo, log)
	if err := server.Start(); err != nil {
		log.Fatalw("start server", "err", err)
	}
	log.Infow("products api listening", "addr", cfg.ProductsAPIAddr, "db", cfg.SQLitePath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Errorw("graceful shutdown error", "err", err)
	}
}
