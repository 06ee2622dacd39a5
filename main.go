package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medassist/assistant-gateway/internal/ai"
	"github.com/medassist/assistant-gateway/internal/backend"
	"github.com/medassist/assistant-gateway/internal/config"
	"github.com/medassist/assistant-gateway/internal/handler"
	"github.com/medassist/assistant-gateway/internal/middleware"
	"github.com/medassist/assistant-gateway/internal/notify"
	"github.com/medassist/assistant-gateway/internal/service"
	"github.com/medassist/assistant-gateway/internal/snapshot"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("ai_mode", cfg.AI.Mode),
	)

	// Initialize backend client
	backendClient, err := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, nil, logger)
	if err != nil {
		logger.Fatal("Failed to initialize backend client", zap.Error(err))
	}

	// Initialize fallback responder
	var responder ai.Responder
	if cfg.AI.Mode == config.AIModeOpenAI {
		responder, err = ai.NewOpenAIResponder(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			logger.Fatal("Failed to initialize OpenAI responder", zap.Error(err))
		}
	} else {
		responder = ai.NewRemoteResponder(backendClient)
	}

	// Initialize snapshot store and assistant engine
	store := snapshot.New(backendClient, logger)
	assistant := service.NewAssistant(store, backendClient, responder, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Track running timers so completions refresh the cached view
	tracker := service.NewCountdownTracker(func(id string) {
		if err := store.RefreshTimers(context.Background()); err != nil {
			logger.Warn("timer completion refresh failed", zap.Error(err), zap.String("timer_id", id))
		}
	}, logger)
	defer tracker.Stop()
	store.OnSwap(func(s *snapshot.Snapshot) {
		tracker.Sync(s.Timers)
	})

	// Warm the snapshot; the service still starts when the backend is
	// down and recovers via the periodic refresh.
	if err := store.Refresh(ctx); err != nil {
		logger.Warn("initial snapshot refresh failed", zap.Error(err))
	}

	// Start the notification listener and the periodic fallback refresh
	listener := notify.NewListener(cfg.Backend.WebSocketURL, store, logger)
	go listener.Run(ctx)
	go store.RunPeriodic(ctx, cfg.Backend.RefreshInterval)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Register handlers
	assistantHandler := handler.NewAssistantHandler(assistant, store, backendClient, logger)
	assistantHandler.Register(r)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stop the listener and background refreshes
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
