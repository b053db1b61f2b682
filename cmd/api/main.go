package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gamingtechpro/storefront-backend/api/routes"
	"github.com/gamingtechpro/storefront-backend/internal/accounts"
	cartsvc "github.com/gamingtechpro/storefront-backend/internal/cart"
	checkoutsvc "github.com/gamingtechpro/storefront-backend/internal/checkout"
	"github.com/gamingtechpro/storefront-backend/internal/notifications"
	"github.com/gamingtechpro/storefront-backend/internal/orders"
	"github.com/gamingtechpro/storefront-backend/internal/pricing"
	"github.com/gamingtechpro/storefront-backend/pkg/auth/session"
	"github.com/gamingtechpro/storefront-backend/pkg/config"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
	"github.com/gamingtechpro/storefront-backend/pkg/metrics"
	"github.com/gamingtechpro/storefront-backend/pkg/migrate"
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

	kv, pinger, cleanup, err := buildStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap store backend", err)
		os.Exit(1)
	}
	defer cleanup()

	sessions, err := session.NewManager(kv)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(context.Background(), kv, kvstore.CartKey())
	if err != nil {
		logg.Error(context.Background(), "failed to hydrate cart", err)
		os.Exit(1)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	notifier := notifications.NewLogNotifier(logg)

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.Params{
		LiveCart:  cartStore,
		KV:        kv,
		Selection: pricing.NewSelection(pricing.DefaultCatalog()),
		Schedule:  pricing.ScheduleFromConfig(cfg.Pricing),
		Processor: orders.NewSimulated(cfg.Checkout.SimulatedLatency),
		Notifier:  notifier,
		Metrics:   checkoutMetrics,
		Logger:    logg,
		Timeout:   cfg.Checkout.ProcessingTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	accountsRepo, err := accounts.NewRepository(kv)
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts repository", err)
		os.Exit(1)
	}
	accountsService, err := accounts.NewService(accountsRepo, sessions, cfg.JWT, logg, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Store.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pinger, sessions, cartStore, checkoutService, accountsService, notifier),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildStore selects the snapshot backend from config. The returned
// cleanup is a no-op for the memory backend.
func buildStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kvstore.Store, kvstore.Pinger, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		client, err := kvstore.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing redis", err)
			}
		}
		return client, client, cleanup, nil

	case config.StoreBackendGorm:
		client, err := kvstore.NewGorm(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}
		return client, client, cleanup, nil

	default:
		mem := kvstore.NewMemory()
		return mem, mem, func() {}, nil
	}
}
