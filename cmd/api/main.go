package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/pustakaid/bookstore-backend/api/routes"
	authsvc "github.com/pustakaid/bookstore-backend/internal/auth"
	"github.com/pustakaid/bookstore-backend/internal/catalog"
	txnsvc "github.com/pustakaid/bookstore-backend/internal/transactions"
	"github.com/pustakaid/bookstore-backend/internal/uploads"
	"github.com/pustakaid/bookstore-backend/internal/users"
	"github.com/pustakaid/bookstore-backend/pkg/config"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
	"github.com/pustakaid/bookstore-backend/pkg/redis"
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

	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		logg.Error(context.Background(), "failed to create data dir", err)
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewRepository(cfg.Store.DataDir)
	if err != nil {
		logg.Error(context.Background(), "failed to open catalog store", err)
		os.Exit(1)
	}
	userRepo, err := users.NewRepository(cfg.Store.DataDir)
	if err != nil {
		logg.Error(context.Background(), "failed to open user store", err)
		os.Exit(1)
	}
	txnRepo, err := txnsvc.NewRepository(cfg.Store.DataDir)
	if err != nil {
		logg.Error(context.Background(), "failed to open transaction store", err)
		os.Exit(1)
	}
	uploadService, err := uploads.NewService(cfg.Store.AssetsDir)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare assets dir", err)
		os.Exit(1)
	}

	// Redis only powers auth rate limiting; the API runs without it
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		redisClient,
		catalog.NewService(catalogRepo),
		authsvc.NewService(userRepo, cfg.JWT, cfg.Password),
		txnsvc.NewService(txnRepo, catalogRepo),
		uploadService,
	)

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
		Addr:    addr,
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
