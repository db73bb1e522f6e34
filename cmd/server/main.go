package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/anchorgraph/internal/api"
	"github.com/Harshitk-cp/anchorgraph/internal/buildconfig"
	"github.com/Harshitk-cp/anchorgraph/internal/config"
	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if err := config.Load(); err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	corpusStore, closeStore := openStore(ctx, logger)
	defer closeStore()

	app := api.NewApp(corpusStore, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("backend", config.StoreBackend()),
			zap.String("version", buildconfig.Version()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func openStore(ctx context.Context, logger *zap.Logger) (domain.CorpusStore, func()) {
	switch backend := config.StoreBackend(); backend {
	case config.BackendFile:
		logger.Info("using file store",
			zap.String("anchors", config.AnchorsPath()),
			zap.String("readings", config.ReadingsPath()))
		return store.NewFileStore(config.AnchorsPath(), config.ReadingsPath()), func() {}

	case config.BackendPostgres:
		dbURL := config.DatabaseURL()
		if dbURL == "" {
			logger.Fatal("DATABASE_URL is required for the postgres backend")
		}

		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("failed to ping database", zap.Error(err))
		}
		logger.Info("connected to database")

		pg := store.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to prepare schema", zap.Error(err))
		}
		return pg, pool.Close

	default:
		logger.Fatal("unknown STORE_BACKEND", zap.String("backend", backend))
		return nil, nil
	}
}
