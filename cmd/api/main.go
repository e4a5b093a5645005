package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AhmedKettaf/inilapstore/api/routes"
	authsvc "github.com/AhmedKettaf/inilapstore/internal/auth"
	buildsvc "github.com/AhmedKettaf/inilapstore/internal/build"
	cartsvc "github.com/AhmedKettaf/inilapstore/internal/cart"
	catalogsvc "github.com/AhmedKettaf/inilapstore/internal/catalog"
	checkoutsvc "github.com/AhmedKettaf/inilapstore/internal/checkout"
	ordersvc "github.com/AhmedKettaf/inilapstore/internal/orders"
	"github.com/AhmedKettaf/inilapstore/internal/users"
	"github.com/AhmedKettaf/inilapstore/pkg/auth/session"
	"github.com/AhmedKettaf/inilapstore/pkg/config"
	"github.com/AhmedKettaf/inilapstore/pkg/db"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
	"github.com/AhmedKettaf/inilapstore/pkg/metrics"
	"github.com/AhmedKettaf/inilapstore/pkg/migrate"
	"github.com/AhmedKettaf/inilapstore/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	catalogRepo := catalogsvc.NewRepository(dbClient.DB())
	catalogService, err := catalogsvc.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	buildStore, err := buildsvc.NewStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create build store", err)
		os.Exit(1)
	}
	buildService, err := buildsvc.NewService(buildStore, catalogService, cartService)
	if err != nil {
		logg.Error(context.Background(), "failed to create build service", err)
		os.Exit(1)
	}

	orderRepo := ordersvc.NewRepository(dbClient.DB())
	orderService, err := ordersvc.NewService(orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.Options{
		Transactor:     dbClient,
		CatalogRepo:    catalogRepo,
		OrderRepo:      orderRepo,
		Carts:          cartService,
		Idempotency:    redisClient,
		IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		Metrics:        checkoutMetrics,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.Options{
		Users:     users.NewRepository(dbClient.DB()),
		Sessions:  sessionManager,
		Limiter:   redisClient,
		JWT:       cfg.JWT,
		RateLimit: cfg.AuthRateLimit,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Sessions: sessionManager,
			Registry: registry,
			Catalog:  catalogService,
			Cart:     cartService,
			Build:    buildService,
			Checkout: checkoutService,
			Orders:   orderService,
			Auth:     authService,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
