package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/beanwagon-backend/api/routes"
	"github.com/angelmondragon/beanwagon-backend/internal/migrate"
	"github.com/angelmondragon/beanwagon-backend/internal/orders"
	"github.com/angelmondragon/beanwagon-backend/internal/storage"
	"github.com/angelmondragon/beanwagon-backend/internal/validate"
	"github.com/angelmondragon/beanwagon-backend/pkg/config"
	"github.com/angelmondragon/beanwagon-backend/pkg/kv"
	"github.com/angelmondragon/beanwagon-backend/pkg/logger"
	"github.com/angelmondragon/beanwagon-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	var store kv.Store
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logg.Warn(ctx, "using in-memory storage driver, data will not survive a restart")
		store = kv.NewMemory()
	default:
		redisClient, err := kv.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}()
		store = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	storageMetrics := metrics.NewStorageMetrics(registry)

	recordStore, err := storage.NewService(store, storage.NewKeys(cfg.Storage.Namespace), logg, storageMetrics, validate.New())
	if err != nil {
		logg.Error(ctx, "failed to build record store", err)
		os.Exit(1)
	}

	// Startup lifecycle: seed, self-heal, then bring the schema current.
	// None of these throw; a failed migration leaves the data on its
	// original version and the app serves it as-is.
	recordStore.SeedInitialData(ctx)
	recordStore.ValidateStoredData(ctx)

	engine, err := migrate.NewEngine(recordStore, logg, storageMetrics, migrate.Steps())
	if err != nil {
		logg.Error(ctx, "failed to build migration engine", err)
		os.Exit(1)
	}
	if result := engine.RunPending(ctx); !result.Success {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"from_version": result.FromVersion,
			"to_version":   result.ToVersion,
			"errors":       result.Errors,
		}), "schema migration failed, continuing on original version")
	}

	orderService, err := orders.NewService(recordStore)
	if err != nil {
		logg.Error(ctx, "failed to build order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, recordStore, orderService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
