package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/TaskForge/taskforge-backend/config"
	"github.com/TaskForge/taskforge-backend/db"
	"github.com/TaskForge/taskforge-backend/handlers"
	"github.com/TaskForge/taskforge-backend/logger"
	"github.com/TaskForge/taskforge-backend/models"
	"github.com/TaskForge/taskforge-backend/router"
	"github.com/TaskForge/taskforge-backend/store/postgres"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	if cfg.Server.Environment == config.EnvProduction {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		_ = redisClient.Close()
	}()

	// Stores
	taskStore := postgres.NewPgTaskStore(pool)
	subtaskStore := postgres.NewPgSubtaskStore(pool)
	projectStore := postgres.NewPgProjectStore(pool)
	userStore := postgres.NewPgUserStore(pool)

	// Models
	taskModel := models.NewTaskModel(taskStore, userStore)
	subtaskModel := models.NewSubtaskModel(subtaskStore, taskStore, userStore)
	projectModel := models.NewProjectModel(projectStore, userStore)
	userModel := models.NewUserModel(userStore)

	// Handlers
	deps := router.Dependencies{
		Config:         cfg,
		RedisClient:    redisClient,
		TaskHandler:    handlers.NewTaskHandler(taskModel),
		SubtaskHandler: handlers.NewSubtaskHandler(subtaskModel),
		ProjectHandler: handlers.NewProjectHandler(projectModel),
		UserHandler:    handlers.NewUserHandler(userModel),
		HealthHandler:  handlers.NewHealthHandler(pool, redisPinger{redisClient}, cfg.Server.Version),
	}

	r := router.SetupRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
	}
	log.Info("Server exited")
}

// redisPinger adapts the redis client to the health handler's Pinger.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
