package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/usof-platform/usof-backend/internal/api"
	"github.com/usof-platform/usof-backend/internal/cache"
	"github.com/usof-platform/usof-backend/internal/config"
	"github.com/usof-platform/usof-backend/internal/database"
	"github.com/usof-platform/usof-backend/internal/logging"
	"github.com/usof-platform/usof-backend/internal/models"
	"github.com/usof-platform/usof-backend/internal/scheduler"
)

func main() {
	// load config
	cfg, err := config.LoadConfig("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// initialize logging
	if err := logging.InitLogger(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()
	logger := logging.GetLogger()

	// initialize database
	if err := database.Initialize(cfg); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.CloseDatabase()

	// execute database migration
	if err := database.Migrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Category{},
		&models.Like{},
		&models.Favorite{},
	); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 配置了 Redis 时切换到共享的 token 黑名单
	if cfg.Redis.Enabled() {
		ttl := time.Duration(cfg.JWT.ExpireHours) * time.Hour
		blacklist, err := cache.NewRedisBlacklist(cfg.Redis, ttl)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer blacklist.Close()
		cache.Blacklist = blacklist
		logger.Info("using redis token blacklist", zap.String("address", cfg.Redis.Address))
	}

	// initialize lock scheduler
	lockScheduler := scheduler.NewLockScheduler()
	if err := lockScheduler.Start(); err != nil {
		logger.Fatal("Failed to start lock scheduler", zap.Error(err))
	}
	defer lockScheduler.Stop()

	// set up routes
	router := api.SetupRoutes()

	// create http server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		lockScheduler.Stop()

		if err := server.Close(); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("Server is starting", zap.String("addr", cfg.Server.Addr()))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	logger.Info("Server stopped")
}
