package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/transit-router/internal/config"
	"github.com/smarttransit/transit-router/internal/database"
	"github.com/smarttransit/transit-router/internal/handlers"
	"github.com/smarttransit/transit-router/internal/middleware"
	"github.com/smarttransit/transit-router/internal/services"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting transit router")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Load the network tables
	loader, db, err := database.OpenNetworkLoader(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if db != nil {
		defer db.Close()
		logger.Info("Database connection established")
	}

	net, err := loader.LoadNetwork()
	if err != nil {
		logger.Fatalf("Failed to load network: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"source":   cfg.Network.Source,
		"network":  net.Name,
		"systems":  len(net.Systems),
		"lines":    net.LineCount(),
		"stations": len(net.StationNames()),
	}).Info("Network loaded")

	routeService := services.NewRouteService(net, services.RouteOptions{
		CacheSize:          cfg.Cache.Size,
		CacheTTL:           cfg.Cache.TTL,
		ClosureDelimiter:   cfg.Network.ClosureDelimiter,
		MaxDisplayStations: cfg.Network.MaxDisplayStations,
	}, logger)

	var pinger handlers.Pinger
	if db != nil {
		pinger = db
	}
	router := setupRouter(cfg, logger, routeService, handlers.NewHealthHandler(cfg.Network.Source, pinger, routeService))

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// setupRouter wires middleware and routes
func setupRouter(cfg *config.Config, logger *logrus.Logger, finder handlers.RouteFinder, health *handlers.HealthHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  cfg.CORS.AllowedMethods,
		AllowHeaders:  cfg.CORS.AllowedHeaders,
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/health", health.Health)

	v1 := router.Group("/api/v1")
	handlers.NewRouteHandler(finder, logger).RegisterRoutes(v1)

	return router
}
