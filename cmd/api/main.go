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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/casacomune/community-api/config"
	"github.com/casacomune/community-api/internal/handlers"
	"github.com/casacomune/community-api/internal/middleware"
	"github.com/casacomune/community-api/internal/ratelimit"
	"github.com/casacomune/community-api/internal/repository"
	"github.com/casacomune/community-api/internal/services"
	"github.com/casacomune/community-api/pkg/db"
	"github.com/casacomune/community-api/pkg/httpclient"
	"github.com/casacomune/community-api/pkg/logger"
	"github.com/casacomune/community-api/pkg/mailer"
	"github.com/casacomune/community-api/pkg/metrics"
	"github.com/casacomune/community-api/pkg/profiling"
	"github.com/casacomune/community-api/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting community API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Start continuous profiling if configured
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	var pool *pgxpool.Pool
	if cfg.Database.WorkOffline {
		logger.Warn("Running in offline mode - submissions will not be stored")
	} else {
		pool, err = db.NewPool(context.Background(), db.PoolConfig{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
		}
		defer pool.Close()
	}

	// Initialize the admin notification mailer (optional)
	var notifier services.NotifierInterface
	if cfg.Mail.AccessKeyID != "" && cfg.Mail.SecretAccessKey != "" {
		m, mailErr := mailer.New(mailer.Config{
			AccessKeyID:     cfg.Mail.AccessKeyID,
			SecretAccessKey: cfg.Mail.SecretAccessKey,
			Region:          cfg.Mail.Region,
			FromAddress:     cfg.Mail.FromAddress,
			FromName:        cfg.Mail.FromName,
		})
		if mailErr != nil {
			logger.Fatal("Failed to initialize mailer", zap.Error(mailErr))
		}
		notifier = m
	} else {
		logger.Warn("Admin notifications disabled: mail credentials not configured")
	}

	// Initialize HTTP client for webhook triggers
	httpClient := httpclient.NewStandardClient()

	// Initialize repositories and services
	inquiryRepo := repository.NewInquiryRepository(pool)
	contactService := services.NewContactService(inquiryRepo, notifier, cfg, httpClient)
	adminService := services.NewInquiryAdminService(inquiryRepo)

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(contactService)
	adminInquiriesHandler := handlers.NewAdminInquiriesHandler(adminService)
	healthHandler := handlers.NewHealthHandler(pool)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only allow the configured origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Admin-Auth-Token", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Token-bucket limiter for the general API surface; the contact
	// form gets the stricter fixed-window submission limiter
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	defer generalRateLimiter.Stop()

	submissionLimiter := ratelimit.NewFixedWindowLimiter(
		cfg.RateLimit.MaxPerWindow,
		cfg.RateLimit.Window,
	)

	// Utility endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.POST("/contact",
		middleware.SubmissionLimitMiddleware(submissionLimiter),
		middleware.BodySizeLimitMiddleware(100*1024),
		contactHandler.SubmitContact,
	)

	admin := v1.Group("/admin")
	admin.Use(generalRateLimiter.Middleware(), middleware.AdminAuthMiddleware(cfg.Auth.AdminAPIToken))
	admin.GET("/inquiries", adminInquiriesHandler.ListInquiries)
	admin.POST("/inquiries/:referenceId/status", middleware.BodySizeLimitMiddleware(10*1024), adminInquiriesHandler.UpdateStatus)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
