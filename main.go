// @title Gigante Storefront API
// @version 1.0
// @description Public storefront API: catalog, search, quotes and contact forms
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
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
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/guelo0987/gigante-storefront/config"
	"github.com/guelo0987/gigante-storefront/middleware"
	"github.com/guelo0987/gigante-storefront/models"
	"github.com/guelo0987/gigante-storefront/observability"
	"github.com/guelo0987/gigante-storefront/routes/storefront_routes"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Activity database (optional)
	if err := config.InitDB(cfg); err != nil {
		logger.Fatal("activity database init failed", zap.Error(err))
	}
	defer config.CloseDB()

	// Redis connection (optional)
	if err := config.ConnectRedis(cfg); err != nil {
		logger.Warn("redis unavailable, continuing without it", zap.Error(err))
	}
	defer config.CloseRedis()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := observability.Store()

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.ServerTiming(),
		middleware.RequestLogger(logger, metrics),
		gin.Recovery(),
	)

	// Configure CORS for all content types including PDFs
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match", "X-Request-ID", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length", "ETag", "Server-Timing", "X-Request-ID"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", gin.H{
			"redis":    config.RedisClient != nil,
			"activity": config.DB != nil,
		}))
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(config.RedisClient, "store", cfg.RateLimitPerMinute, time.Minute))

	svc := storefront_routes.NewStoreServices(cfg, config.RedisClient, config.DB, metrics)
	svc.FormMiddleware = []gin.HandlerFunc{
		middleware.RateLimiter(config.RedisClient, "forms", cfg.FormRateLimitPerMinute, time.Minute),
	}
	storefront_routes.SetupStorefrontRoutes(api, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server is running", zap.String("addr", srv.Addr), zap.String("upstream", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	svc.Activity.Wait()
}
