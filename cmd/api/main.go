package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/b2xautomacao/catalogo-sub004/api/routes"
	"github.com/b2xautomacao/catalogo-sub004/internal/cart"
	"github.com/b2xautomacao/catalogo-sub004/internal/catalog"
	"github.com/b2xautomacao/catalogo-sub004/internal/products"
	"github.com/b2xautomacao/catalogo-sub004/internal/stores"
	"github.com/b2xautomacao/catalogo-sub004/pkg/config"
	"github.com/b2xautomacao/catalogo-sub004/pkg/db"
	"github.com/b2xautomacao/catalogo-sub004/pkg/logger"
	"github.com/b2xautomacao/catalogo-sub004/pkg/metrics"
	"github.com/b2xautomacao/catalogo-sub004/pkg/migrate"
	"github.com/b2xautomacao/catalogo-sub004/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(context.Background(), logg, "database", err)

	err = migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient)
	requireResource(context.Background(), logg, "dev migrations", err)

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(context.Background(), logg, "redis", err)

	registry := prometheus.NewRegistry()
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	storesRepo := stores.NewRepository(dbClient.DB())
	settingsCache, err := stores.NewSettingsCache(redisClient, cfg.Cache.PricingSettingsTTL)
	requireResource(context.Background(), logg, "settings cache", err)

	storesService, err := stores.NewService(storesRepo, settingsCache, logg)
	requireResource(context.Background(), logg, "stores service", err)

	productsRepo := products.NewRepository(dbClient.DB())
	productsService, err := products.NewService(productsRepo, dbClient, storesRepo)
	requireResource(context.Background(), logg, "products service", err)

	cartService, err := cart.NewService(storesService, productsRepo, quoteMetrics)
	requireResource(context.Background(), logg, "cart service", err)

	catalogService, err := catalog.NewService(storesService, productsRepo)
	requireResource(context.Background(), logg, "catalog service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Registry: registry,
			Stores:   storesService,
			Products: productsService,
			Cart:     cartService,
			Catalog:  catalogService,
		}),
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if err != nil {
		logg.Error(ctx, "shutdown finished with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
