package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Trang-1707/shoppi-backend/api/controllers"
	"github.com/Trang-1707/shoppi-backend/api/routes"
	"github.com/Trang-1707/shoppi-backend/internal/checkout"
	"github.com/Trang-1707/shoppi-backend/internal/inventory"
	"github.com/Trang-1707/shoppi-backend/internal/notifications"
	"github.com/Trang-1707/shoppi-backend/internal/orders"
	"github.com/Trang-1707/shoppi-backend/internal/products"
	"github.com/Trang-1707/shoppi-backend/internal/users"
	"github.com/Trang-1707/shoppi-backend/internal/vouchers"
	"github.com/Trang-1707/shoppi-backend/pkg/config"
	"github.com/Trang-1707/shoppi-backend/pkg/db"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"github.com/Trang-1707/shoppi-backend/pkg/metrics"
	"github.com/Trang-1707/shoppi-backend/pkg/migrate"
	"github.com/Trang-1707/shoppi-backend/pkg/pubsub"
	"github.com/Trang-1707/shoppi-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	// pubsub is optional: without a project id the API skips confirmations
	var publisher notifications.Publisher
	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Warn(logg.WithField(ctx, "reason", err.Error()), "pubsub unavailable, order confirmations disabled")
	} else {
		defer pubsubClient.Close()
		publisher, err = notifications.NewPublisher(pubsubClient)
		requireResource(ctx, logg, "notification publisher", err)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	productsRepo := products.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	voucherService, err := vouchers.NewService(vouchers.NewRepository(dbClient.DB()), productsRepo)
	requireResource(ctx, logg, "voucher service", err)

	ordersService, err := orders.NewService(ordersRepo)
	requireResource(ctx, logg, "orders service", err)

	inventoryService, err := inventory.NewService(inventoryRepo, productsRepo)
	requireResource(ctx, logg, "inventory service", err)

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)

	checkoutService, err := checkout.NewService(
		usersRepo,
		productsRepo,
		inventoryRepo,
		voucherService,
		ordersRepo,
		dbClient,
		publisher,
		checkoutMetrics,
		logg,
		cfg.Checkout,
	)
	requireResource(ctx, logg, "checkout service", err)

	readiness := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
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
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			readiness,
			redisClient,
			checkoutService,
			ordersService,
			voucherService,
			inventoryService,
			promhttp.Handler(),
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
