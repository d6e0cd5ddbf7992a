package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cliptube/backend/internal/bootstrap"
	"github.com/cliptube/backend/internal/config"
	"github.com/cliptube/backend/internal/server"
	"github.com/cliptube/backend/pkg/database"
	"github.com/cliptube/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if _, err := logger.Init(cfg.LogLevel, cfg.AppEnv == "development"); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err := bootstrap.Migrate(db); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDevUser(db); err != nil {
			logger.L().Fatal("failed to seed dev user", zap.Error(err))
		}
	}

	redisURL := cfg.RedisURL
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.L().Fatal("invalid redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg, db, redisClient)
	if err != nil {
		logger.L().Fatal("failed to build server", zap.Error(err))
	}

	logger.L().Info("server starting", zap.String("port", cfg.Port))
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}
