package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/MacDuki/sharedShop/internal/auth"
	"github.com/MacDuki/sharedShop/internal/config"
	"github.com/MacDuki/sharedShop/internal/ratelimit"
	"github.com/MacDuki/sharedShop/internal/server"
	"github.com/MacDuki/sharedShop/internal/storage/sqlite"
	"github.com/MacDuki/sharedShop/pkg/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	addr := pflag.String("addr", "", "listen address (overrides SHAREDSHOP_ADDR)")
	dbPath := pflag.String("db", "", "SQLite database path (overrides SHAREDSHOP_DB_PATH)")
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.App.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DB.Path = *dbPath
	}

	logger := logging.Setup(os.Stdout, cfg.App.LogLevel, cfg.App.LogFormat)

	if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	store, err := sqlite.New(cfg.DB.Path, sqlite.WithMaxBatchOps(cfg.DB.MaxBatchOps))
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DB.Path, "max_batch_ops", cfg.DB.MaxBatchOps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limiter ratelimit.Limiter = ratelimit.Noop{}
	if cfg.Redis.Enabled() {
		fw, err := ratelimit.NewFixedWindow(ctx, cfg.Redis.URL, int64(cfg.Redis.AcceptLimit), cfg.Redis.AcceptWindow)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer fw.Close()
		limiter = fw
		logger.Info("Invitation rate limit enabled", "limit", cfg.Redis.AcceptLimit, "window", cfg.Redis.AcceptWindow)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	authenticator := auth.NewPasswordAuthenticator(store)
	router := server.NewRouter(server.Deps{
		Store:          store,
		Authenticator:  authenticator,
		JWTManager:     auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Logger:         logger,
		Limiter:        limiter,
		Registry:       registry,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.App.RequestTimeout,
	})

	// h2c serves HTTP/2 without TLS, which Connect's gRPC protocol needs.
	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", cfg.App.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
