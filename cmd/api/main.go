package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/weiluntsai/backoffice-backend/api/routes"
	"github.com/weiluntsai/backoffice-backend/internal/contacts"
	"github.com/weiluntsai/backoffice-backend/internal/customers"
	"github.com/weiluntsai/backoffice-backend/internal/dashboard"
	"github.com/weiluntsai/backoffice-backend/internal/orders"
	"github.com/weiluntsai/backoffice-backend/internal/products"
	"github.com/weiluntsai/backoffice-backend/internal/store"
	"github.com/weiluntsai/backoffice-backend/pkg/config"
	"github.com/weiluntsai/backoffice-backend/pkg/db"
	"github.com/weiluntsai/backoffice-backend/pkg/db/models"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
	"github.com/weiluntsai/backoffice-backend/pkg/metrics"
	"github.com/weiluntsai/backoffice-backend/pkg/migrate"
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

	// The database dials on first use, so the API can come up and serve
	// /health while the database is still starting.
	dbClient := db.NewLazy(cfg.DB, logg)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	productService, err := products.NewService(store.New[models.Product, *models.Product](dbClient))
	requireService(logg, "products", err)

	orderService, err := orders.NewService(store.New[models.Order, *models.Order](dbClient))
	requireService(logg, "orders", err)

	customerService, err := customers.NewService(store.New[models.Customer, *models.Customer](dbClient))
	requireService(logg, "customers", err)

	contactService, err := contacts.NewService(store.New[models.Contact, *models.Contact](dbClient))
	requireService(logg, "contacts", err)

	dashboardService, err := dashboard.NewService(productService, orderService, customerService, contactService)
	requireService(logg, "dashboard", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			httpMetrics,
			productService,
			orderService,
			customerService,
			contactService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
