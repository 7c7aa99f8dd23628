package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/auth"
	"github.com/o6b7/travelbond/internal/cache"
	"github.com/o6b7/travelbond/internal/config"
	"github.com/o6b7/travelbond/internal/dashboard"
	"github.com/o6b7/travelbond/internal/database"
	"github.com/o6b7/travelbond/internal/handlers"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"github.com/o6b7/travelbond/internal/middleware"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/search"
	"github.com/o6b7/travelbond/internal/telemetry"
	"github.com/o6b7/travelbond/internal/util"
	"go.uber.org/zap"
)

const (
	serviceName    = "travelbond-api"
	serviceVersion = "0.1.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== TravelBond server starting ===",
		zap.String("environment", cfg.Environment),
		zap.String("database_driver", cfg.DatabaseDriver),
	)

	metrics.Initialize()

	tp, err := telemetry.InitTracer(context.Background(), telemetry.Config{
		ServiceName:       serviceName,
		ServiceVersion:    serviceVersion,
		Environment:       cfg.Environment,
		OTLPEndpoint:      cfg.OTLPEndpoint,
		Enabled:           cfg.TracingEnabled(),
		Insecure:          !cfg.IsProduction(),
		SamplingRate:      cfg.TracingSampling,
		DatabaseDriver:    cfg.DatabaseDriver,
		DisclosureInitial: cfg.DisclosureInitial,
		DisclosureStep:    cfg.DisclosureStep,
	})
	if err != nil {
		logger.Log.Warn("Tracing disabled", zap.Error(err))
	}

	if err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL, !cfg.IsProduction()); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(database.DB); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	if cfg.RedisEnabled() {
		if _, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		}
	}
	defer cache.GetRedisClient().Close()

	repos := repository.New(database.DB)
	authService := auth.NewService(cfg.JWTSecret, repos.Users)
	h := handlers.NewHandlers(repos, authService,
		dashboard.NewService(repos.Events, repos.Groups, repos.Posts),
		util.DisclosureDefaults{Initial: cfg.DisclosureInitial, Step: cfg.DisclosureStep},
	)

	h.AddHealthCheck("database", func(context.Context) error { return database.Health() })
	if rc := cache.GetRedisClient(); rc != nil {
		h.AddHealthCheck("redis", rc.Ping)
	}

	if cfg.ElasticsearchURL != "" {
		searchClient, err := search.NewClient(cfg.ElasticsearchURL)
		if err != nil {
			logger.Log.Warn("Elasticsearch unavailable, searching the database instead", zap.Error(err))
		} else if err := searchClient.EnsureIndices(context.Background()); err != nil {
			logger.Log.Warn("Failed to create search indices, searching the database instead", zap.Error(err))
		} else {
			h.SetSearchClient(searchClient)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "Retry-After"}
	r.Use(cors.New(corsConfig))

	apiMiddleware := []gin.HandlerFunc{
		middleware.RedisRateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow),
	}
	if tp != nil {
		apiMiddleware = append([]gin.HandlerFunc{middleware.TracingMiddleware(serviceName)}, apiMiddleware...)
	}
	h.RegisterRoutes(r, apiMiddleware...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("TravelBond API listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Log.Warn("Failed to flush traces", zap.Error(err))
		}
	}

	logger.Log.Info("Server exited")
}
