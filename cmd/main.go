package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwise1/reportes_api/config"
	"github.com/bwise1/reportes_api/internal/anonymizer"
	deps "github.com/bwise1/reportes_api/internal/debs"
	api "github.com/bwise1/reportes_api/internal/http/rest"
	"github.com/bwise1/reportes_api/internal/service"
	"github.com/bwise1/reportes_api/util/logging"
	"go.uber.org/zap"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
	startupTimeout                = 30 * time.Second
)

func main() {
	cfg := config.New()

	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	d, err := deps.New(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("failed to initialize dependencies", zap.Error(err))
	}

	hasher := anonymizer.New(cfg.HashSalt)
	if hasher.UsesDefaultSalt() {
		logger.Warn("HASH_SALT is not set, reporter hashes use the default salt")
	}

	a := api.New(cfg, d,
		service.NewIngestionService(d.Reports, hasher, logger.Named("ingestion")),
		service.NewQueryService(d.Reports, logger.Named("query")),
	)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.Int("port", cfg.Port))
		if err := a.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		logger.Error("server stopped", zap.Error(err))
	case <-stopChan:
		logger.Info("request to shutdown server", zap.Duration("grace", allowConnectionsAfterShutdown))
		time.Sleep(allowConnectionsAfterShutdown)

		logger.Info("shutting down server")
		if err := a.Shutdown(); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}

	d.Close()
	logger.Info("database connections closed")
}
