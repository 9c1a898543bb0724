package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appbudget "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/budget"
	appreport "github.com/Whapy-Dev/Whapy-CRM-sub000/internal/application/report"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/domain/shared"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/auth"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/cache"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/config"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/logger"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/persistence"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/scheduler"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/infrastructure/storage"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/interfaces/http/handler"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/interfaces/http/middleware"
	"github.com/Whapy-Dev/Whapy-CRM-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting budget ledger service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the idempotency store and the token blacklist. Outside
	// production a missing Redis falls back to in-process stores.
	var (
		idempotencyStore shared.IdempotencyStore
		tokenBlacklist   auth.TokenBlacklist
		redisClient      *redis.Client
	)
	redisClient, err = connectRedis(&cfg.Redis)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory idempotency store and token blacklist",
			zap.Error(err),
		)
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
		idempotencyStore = cache.NewRedisIdempotencyStoreWithClient(redisClient, "")
		tokenBlacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Invoice storage: S3 when a bucket is configured, stub otherwise
	var invoiceStore appbudget.InvoiceStorage
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3InvoiceStore(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize invoice storage", zap.Error(err))
		}
		invoiceStore = s3Store
		log.Info("Invoice storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		if cfg.App.Env == "production" {
			log.Fatal("Invoice storage bucket is required in production")
		}
		log.Warn("No storage bucket configured, invoice uploads use the in-memory stub")
		invoiceStore = storage.NewStubInvoiceStore()
	}

	// Initialize repositories
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	phaseRepo := persistence.NewGormPhaseRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	addendumRepo := persistence.NewGormAddendumRepository(db.DB)
	reviewerRepo := persistence.NewGormReviewerAssignmentRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	budgetService := appbudget.NewBudgetService(
		budgetRepo, phaseRepo, installmentRepo, addendumRepo, reviewerRepo, scope, log,
	)
	phaseService := appbudget.NewPhaseService(phaseRepo, scope, log)
	installmentService := appbudget.NewInstallmentService(
		installmentRepo, scope, invoiceStore, idempotencyStore, log,
	)
	addendumService := appbudget.NewAddendumService(addendumRepo, scope, log)
	pnlService := appreport.NewPnLService(
		budgetRepo, addendumRepo, ledgerRepo, expenseRepo, auditRepo, log,
	)

	// JWT authentication
	jwtService := auth.NewJWTService(cfg.JWT)

	// Overdue installment sweep
	sweeper := scheduler.NewOverdueSweeper(installmentRepo, installmentService, log, scheduler.OverdueSweeperConfig{
		Enabled:  cfg.Overdue.SweepEnabled,
		Interval: cfg.Overdue.SweepInterval,
	})
	if err := sweeper.Start(context.Background()); err != nil {
		log.Fatal("Failed to start overdue sweeper", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sweeper.Stop(stopCtx); err != nil {
			log.Error("Error stopping overdue sweeper", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	budgetHandler := handler.NewBudgetHandler(budgetService)
	phaseHandler := handler.NewPhaseHandler(phaseService)
	installmentHandler := handler.NewInstallmentHandler(installmentService)
	addendumHandler := handler.NewAddendumHandler(addendumService)
	reportHandler := handler.NewReportHandler(pnlService)
	systemHandler := handler.NewSystemHandler(version, map[string]handler.DependencyChecker{
		"database": db.Ping,
		"redis": func() error {
			if redisClient == nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		},
	})

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(&cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Probes stay outside the versioned, authenticated API group
	systemHandler.RegisterRootRoutes(engine)

	// Versioned API routes behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWT(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/system/info",
		},
		Logger: log,
	}))
	r.Register(budgetHandler).
		Register(phaseHandler).
		Register(installmentHandler).
		Register(addendumHandler).
		Register(reportHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func connectRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
