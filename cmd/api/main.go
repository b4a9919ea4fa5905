package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/boticaviva/backend/api/routes"
	"github.com/boticaviva/backend/internal/advice"
	"github.com/boticaviva/backend/internal/auth"
	"github.com/boticaviva/backend/internal/cart"
	"github.com/boticaviva/backend/internal/catalog"
	"github.com/boticaviva/backend/internal/cloudsync"
	"github.com/boticaviva/backend/internal/erp"
	"github.com/boticaviva/backend/internal/orders"
	"github.com/boticaviva/backend/internal/pickup"
	"github.com/boticaviva/backend/internal/settings"
	"github.com/boticaviva/backend/pkg/config"
	"github.com/boticaviva/backend/pkg/db"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/metrics"
	"github.com/boticaviva/backend/pkg/migrate"
	"github.com/boticaviva/backend/pkg/pubsub"
	"github.com/boticaviva/backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	var publisher pubsub.Publisher = pubsub.NoopPublisher{}
	if cfg.GCP.ProjectID != "" {
		psClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := psClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		publisher = psClient
	}

	erpService, err := erp.NewService(
		erp.NewClient(erp.WithTimeout(cfg.ERP.RequestTimeout)),
		erp.NewSessionRepo(dbClient.DB()),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create erp service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(
		catalog.NewMappingRepo(dbClient.DB()),
		catalog.NewPublishedRepo(dbClient.DB()),
		catalog.NewSelectionStore(redisClient),
		erpService,
		logg,
		storeMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRedisStore(redisClient, cfg.Cart.TTL), catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(
		settings.NewRepo(dbClient.DB()),
		cloudsync.NewClient(cfg.CloudSync),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	pickupService, err := pickup.NewService(pickup.NewRepo(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create pickup service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepo(dbClient.DB()),
		cartService,
		erpService,
		publisher,
		logg,
		storeMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	adviceService, err := advice.NewService(cfg.Advice, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create advice service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(cfg.Admin, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Metrics:  storeMetrics,
			Registry: registry,

			Auth:     authService,
			Settings: settingsService,
			Pickup:   pickupService,
			Catalog:  catalogService,
			Cart:     cartService,
			Orders:   orderService,
			ERP:      erpService,
			Advice:   adviceService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
