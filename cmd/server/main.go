package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/config"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/logging"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/password"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/routes"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/store"
	"github.com/ahmetcoskunkizilkaya/storefront-api/internal/token"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// DB log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db, 0, 0)
	logging.Setup(cfg.LogLevel, dbLogHandler)

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, time.Duration(cfg.LogRetentionDays)*24*time.Hour, cleanupDone)

	// Redis product cache (optional)
	var productCache *cache.ProductCache
	redisClient, err := cache.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		slog.Warn("product cache disabled", "error", err)
	} else if redisClient != nil {
		productCache = cache.NewProductCache(redisClient, cfg.ProductCacheTTL)
	}

	// Token manager
	tokens, err := token.NewManager(token.Options{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  cfg.JWTAccessExpiry,
		RefreshTTL: cfg.JWTRefreshExpiry,
	})
	if err != nil {
		slog.Error("token manager init failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Services
	userStore := store.NewUserStore(db)
	authService, err := services.NewAuthService(userStore, password.NewHasher(password.DefaultParams, cfg.PasswordMinLength), tokens, m)
	if err != nil {
		slog.Error("auth service init failed", "error", err)
		os.Exit(1)
	}
	profileService := services.NewProfileService(userStore)
	addressService := services.NewAddressService(store.NewAddressStore(db))

	// left as nil interfaces when redis is not configured
	var productReader services.ProductCache
	var cachePinger handlers.Pinger
	if productCache != nil {
		productReader, cachePinger = productCache, productCache
	}
	productService := services.NewProductService(store.NewProductStore(db), productReader)
	healthHandler := handlers.NewHealthHandler(db, cachePinger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	addressHandler := handlers.NewAddressHandler(addressService)
	productHandler := handlers.NewProductHandler(productService)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(m.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	// Routes
	routes.Setup(app, middleware.Authenticated(tokens, authService, m), m,
		authHandler, profileHandler, addressHandler, productHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
