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

	"github.com/caredesk/appointment-service/internal/config"
	"github.com/caredesk/appointment-service/internal/events"
	"github.com/caredesk/appointment-service/internal/handlers"
	"github.com/caredesk/appointment-service/internal/repositories/postgres"
	"github.com/caredesk/appointment-service/internal/services"
	"github.com/caredesk/appointment-service/internal/sessions"
	"github.com/caredesk/appointment-service/internal/uploads"
	"github.com/caredesk/appointment-service/internal/utils"
	"github.com/caredesk/appointment-service/internal/validator"
	"github.com/caredesk/appointment-service/pkg"
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

	// Initialize Redis (session store)
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(db)
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}
	repo := repoManager.GetRepository()

	// Seed sample data for development environments
	if cfg.SeedOnStart {
		if err := postgres.SeedSampleData(context.Background(), repo); err != nil {
			log.Fatalf("Failed to seed sample data: %v", err)
		}
	}

	// Initialize event publisher: kafka when brokers are configured,
	// otherwise the in-process bus with the audit subscriber.
	var eventPublisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		eventPublisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize kafka publisher: %v", err)
		}
	} else {
		eventPublisher, err = events.NewGoChannelPublisher(slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event bus: %v", err)
		}
	}

	// Session and upload stores
	sessionStore := sessions.NewStore(redisClient, cfg.SessionTTL, cfg.RememberTTL)
	uploadStore, err := uploads.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes, cfg.Upload.AllowedExtensions)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}

	// Initialize validator and services
	v := validator.New()
	serviceManager := services.NewServiceManager(repo, eventPublisher, slogLogger, v)

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, repo, sessionStore, uploadStore, cfg, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlerManager.SetupRoutes(router)

	// Create HTTP server
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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := eventPublisher.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}

	if err := repoManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown repositories: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Failed to close Redis connection: %v", err)
	}

	logger.Info("Server exited")
}
