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

	"github.com/brandcrew/ambassador-crm/api/routes"
	"github.com/brandcrew/ambassador-crm/internal/ambassadors"
	"github.com/brandcrew/ambassador-crm/internal/budget"
	"github.com/brandcrew/ambassador-crm/internal/catalog"
	"github.com/brandcrew/ambassador-crm/internal/guides"
	"github.com/brandcrew/ambassador-crm/internal/merch"
	"github.com/brandcrew/ambassador-crm/internal/promocodes"
	"github.com/brandcrew/ambassador-crm/pkg/config"
	"github.com/brandcrew/ambassador-crm/pkg/db"
	"github.com/brandcrew/ambassador-crm/pkg/env"
	"github.com/brandcrew/ambassador-crm/pkg/logger"
	"github.com/brandcrew/ambassador-crm/pkg/metrics"
	"github.com/brandcrew/ambassador-crm/pkg/migrate"
	"github.com/brandcrew/ambassador-crm/pkg/redis"
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

	conn := dbClient.DB()

	merchRepo := merch.NewRepository(conn)
	ambassadorsRepo := ambassadors.NewRepository(conn)

	merchService, err := merch.NewService(merch.ServiceParams{
		Repo: merchRepo,
		Tx:   dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create merch service", err)
		os.Exit(1)
	}

	budgetService, err := budget.NewService(budget.ServiceParams{
		Applications: merchRepo,
		Ambassadors:  ambassadorsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create budget service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	ambassadorsService, err := ambassadors.NewService(ambassadorsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create ambassadors service", err)
		os.Exit(1)
	}

	promocodesService, err := promocodes.NewService(promocodes.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create promocodes service", err)
		os.Exit(1)
	}

	guidesService, err := guides.NewService(guides.NewRepository(conn), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create guides service", err)
		os.Exit(1)
	}

	// Heroku-style platforms inject PORT directly.
	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, metrics.NewHTTPMetrics(), routes.Services{
			Merch:       merchService,
			Budget:      budgetService,
			Catalog:     catalogService,
			Ambassadors: ambassadorsService,
			Promocodes:  promocodesService,
			Guides:      guidesService,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
