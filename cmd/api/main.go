package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lucasmedina/viandas-backend/api/routes"
	"github.com/lucasmedina/viandas-backend/internal/auth"
	"github.com/lucasmedina/viandas-backend/internal/customers"
	"github.com/lucasmedina/viandas-backend/internal/dashboard"
	"github.com/lucasmedina/viandas-backend/internal/followups"
	"github.com/lucasmedina/viandas-backend/internal/meals"
	"github.com/lucasmedina/viandas-backend/internal/orders"
	"github.com/lucasmedina/viandas-backend/internal/users"
	"github.com/lucasmedina/viandas-backend/pkg/auth/session"
	"github.com/lucasmedina/viandas-backend/pkg/config"
	"github.com/lucasmedina/viandas-backend/pkg/db"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
	"github.com/lucasmedina/viandas-backend/pkg/metrics"
	"github.com/lucasmedina/viandas-backend/pkg/migrate"
	"github.com/lucasmedina/viandas-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "viandas-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "viandas-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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
	orderMetrics := metrics.NewOrderMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	mealsRepo := meals.NewRepository(dbClient.DB())
	customersRepo := customers.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	followupsRepo := followups.NewRepository(dbClient.DB())

	authService, err := auth.NewService(usersRepo, sessionManager, cfg.JWT, cfg.Password, !cfg.App.IsProd(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	mealsService, err := meals.NewService(mealsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create meals service", err)
		os.Exit(1)
	}

	customersService, err := customers.NewService(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	followupsService, err := followups.NewService(followupsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create followups service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, followupsService, customersService, cfg.Prices.Table(), orderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(ordersRepo, customersRepo, followupsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
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
			Cfg:            cfg,
			Logg:           logg,
			DB:             dbClient,
			Redis:          redisClient,
			SessionManager: sessionManager,
			Registry:       registry,
			Auth:           authService,
			Meals:          mealsService,
			Customers:      customersService,
			Orders:         ordersService,
			Followups:      followupsService,
			Dashboard:      dashboardService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
