package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/nptel-prep/quiz-service/internal/cache"
	"github.com/nptel-prep/quiz-service/internal/config"
	"github.com/nptel-prep/quiz-service/internal/events"
	"github.com/nptel-prep/quiz-service/internal/handlers"
	"github.com/nptel-prep/quiz-service/internal/health"
	"github.com/nptel-prep/quiz-service/internal/repositories"
	"github.com/nptel-prep/quiz-service/internal/repositories/postgres"
	"github.com/nptel-prep/quiz-service/internal/services"
	"github.com/nptel-prep/quiz-service/internal/utils"
	"github.com/nptel-prep/quiz-service/internal/validator"
	"github.com/nptel-prep/quiz-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database. Failure is not fatal: routing still comes up and
	// the readiness gate keeps /api answering 503 until the store exists.
	var repo repositories.Repository
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Warn("database unavailable at startup", "error", err)
	} else {
		repo = postgres.NewPostgreSQLRepository(db)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("failed to initialize redis", "error", err)
		}
	}

	// Store readiness prober; migrates the schema on first contact.
	var pinger health.Pinger
	var onConnect func(ctx context.Context) error
	if repo != nil {
		pinger = repo
		onConnect = repo.Migrate
	}
	prober := health.NewStoreProber(pinger, 10*time.Second, logger, onConnect)
	prober.Start()

	// Leaderboard cache and score-event bus (cache invalidation).
	lbCache := cache.NewLeaderboardCache(redisClient)
	bus := events.NewBus(slogLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := events.StartLeaderboardInvalidator(ctx, bus, lbCache, logger); err != nil {
		log.Fatalf("Failed to start leaderboard invalidator: %v", err)
	}

	// Initialize services and handlers
	serviceManager := services.NewServiceManager(repo, lbCache, bus, slogLogger, validator.New())
	handlerManager := handlers.NewHandlerManager(serviceManager, logger, prober)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger, cfg.AllowedOrigins)
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	prober.Shutdown()

	if err := serviceManager.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if repo != nil {
		if err := repo.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("server exited")
}
