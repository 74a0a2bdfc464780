package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"safetour/internal/config"
	"safetour/internal/handlers"
	"safetour/internal/middleware"
	"safetour/internal/services"
	"safetour/pkg/ai"
	"safetour/pkg/logger"
	"safetour/pkg/websocket"
	"safetour/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// In-memory stores; everything resets on restart.
	positions := services.NewPositionService()
	events := services.NewEventService()
	users := services.NewUserService()

	// External AI collaborators
	anomalyClient := ai.NewAnomalyClient(cfg.Oracles.AnomalyURL, cfg.Oracles.Timeout)
	geofenceClient := ai.NewGeofenceClient(cfg.Oracles.GeofenceURL, cfg.Oracles.Timeout)
	triageClient := ai.NewTriageClient(cfg.Oracles.TriageURL, cfg.Oracles.Timeout)
	analyticsClient := ai.NewAnalyticsClient(cfg.Oracles.AnalyticsURL, cfg.Oracles.Timeout)

	// Load the initial fence set before accepting traffic, then keep it
	// fresh in the background.
	fences := services.NewFenceService(geofenceClient, appLogger)
	if err := fences.Refresh(context.Background()); err != nil {
		appLogger.WithError(err).Warn("initial geofence load failed, starting with empty set")
	}
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go fences.Run(refreshCtx)

	hub := websocket.NewHub(appLogger)
	go hub.Run()

	pipeline := services.NewIngestService(positions, fences, events, anomalyClient, hub, appLogger)
	wsHandler := websocket.NewHandler(hub, pipeline, appLogger)

	demo := users.Register("Demo Tourist", nil)
	appLogger.WithField("demo_user_id", demo.ID).Info("seeded demo tourist")

	trackingHandler := handlers.NewTrackingHandler(positions, fences, users, demo.ID)
	alertHandler := handlers.NewAlertHandler(events, hub, triageClient, appLogger)
	adminHandler := handlers.NewAdminHandler(events, users, positions, analyticsClient)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	router.GET("/health", trackingHandler.GetHealth)
	router.GET("/ws", wsHandler.HandleWebSocket)

	api := router.Group("/api")
	{
		routes.SetupTrackingRoutes(api, trackingHandler)
		routes.SetupAlertRoutes(api, alertHandler)
		routes.SetupAdminRoutes(api, adminHandler)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	stopRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Fatal("server forced to shutdown")
	}

	appLogger.Info("server exited")
}
