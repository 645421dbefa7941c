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
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/eduportal-service/internal/cache"
	"github.com/SAP-F-2025/eduportal-service/internal/config"
	"github.com/SAP-F-2025/eduportal-service/internal/events"
	"github.com/SAP-F-2025/eduportal-service/internal/handlers"
	"github.com/SAP-F-2025/eduportal-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/eduportal-service/internal/services"
	"github.com/SAP-F-2025/eduportal-service/internal/utils"
	"github.com/SAP-F-2025/eduportal-service/internal/validator"
	"github.com/SAP-F-2025/eduportal-service/pkg"
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

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(db)
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize event publisher
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewNoopEventPublisher(slogLogger)
	}

	// Initialize object storage (if configured)
	var minioClient *minio.Client
	if cfg.Minio.Endpoint != "" {
		minioClient, err = minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	}

	// Initialize validator and caches
	v := validator.NewValidator()
	cacheManager := cache.NewCacheManager(redisClient)

	// Initialize services
	serviceManager := services.NewServiceManager(db, repoManager.GetRepository(), slogLogger, v, cacheManager, publisher, minioClient, services.ServiceManagerConfig{
		JWT: services.JWTConfig{
			Secret: cfg.JWTSecret,
			Expiry: cfg.JWTExpiry,
		},
		BcryptCost: cfg.BcryptCost,
		Pagination: services.PaginationConfig{
			DefaultLimit: cfg.DefaultPageLimit,
			MaxLimit:     cfg.MaxPageLimit,
		},
		Upload: services.UploadConfig{
			Bucket:    cfg.Minio.Bucket,
			PublicURL: cfg.Minio.PublicURL,
		},
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Run the outbox relay alongside the HTTP server
	relayCtx, relayCancel := context.WithCancel(context.Background())
	go serviceManager.EventRelay().Run(relayCtx)

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger, cfg.JWTSecret)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger, cfg.CORSOrigins)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	relayCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
