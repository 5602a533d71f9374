package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	donationapp "github.com/foodbridge/backend/internal/application/donation"
	fulfillmentapp "github.com/foodbridge/backend/internal/application/fulfillment"
	identityapp "github.com/foodbridge/backend/internal/application/identity"
	partnerapp "github.com/foodbridge/backend/internal/application/partner"
	"github.com/foodbridge/backend/internal/application/uploads"
	volunteerapp "github.com/foodbridge/backend/internal/application/volunteer"
	"github.com/foodbridge/backend/internal/infrastructure/auth"
	"github.com/foodbridge/backend/internal/infrastructure/config"
	"github.com/foodbridge/backend/internal/infrastructure/logger"
	"github.com/foodbridge/backend/internal/infrastructure/persistence"
	"github.com/foodbridge/backend/internal/infrastructure/storage"
	"github.com/foodbridge/backend/internal/interfaces/http/handler"
	"github.com/foodbridge/backend/internal/interfaces/http/middleware"
	"github.com/foodbridge/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/foodbridge/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			FoodBridge API
//	@version		1.0
//	@description	Food donation marketplace connecting surplus food donors with receiving organizations and volunteers.
//
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT access token.

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

	log.Info("Starting FoodBridge Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token revocation store: Redis when configured, in-process otherwise
	var revoker auth.TokenRevoker
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		defer func() {
			_ = redisClient.Close()
		}()
		revoker = auth.NewRedisTokenRevoker(redisClient)
		log.Info("Redis token revocation store connected")
	} else {
		revoker = auth.NewMemoryTokenRevoker()
		log.Warn("Redis not configured, using in-process token revocation store")
	}

	// Object storage: S3 when configured, in-memory stub otherwise
	var objectStorage uploads.ObjectStorageService
	if cfg.Storage.Bucket != "" && cfg.Storage.AccessKeyID != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(bucketCtx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, using in-memory stub")
	}

	// Repositories
	donationRepo := persistence.NewGormDonationRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	volunteerRepo := persistence.NewGormVolunteerRepository(db.DB)
	organizationRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	transactionScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, revoker, log)
	userService := identityapp.NewUserService(userRepo, log)
	donationService := donationapp.NewService(donationRepo, transactionRepo)
	lifecycleService := fulfillmentapp.NewLifecycleService(transactionScope, donationRepo, transactionRepo, organizationRepo, log)
	volunteerService := volunteerapp.NewService(volunteerRepo, donationRepo, log)
	partnerService := partnerapp.NewService(organizationRepo, log)
	uploadService := uploads.NewService(objectStorage, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	donationHandler := handler.NewDonationHandler(donationService)
	transactionHandler := handler.NewTransactionHandler(lifecycleService)
	volunteerHandler := handler.NewVolunteerHandler(volunteerService)
	organizationHandler := handler.NewOrganizationHandler(partnerService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	systemHandler := handler.NewSystemHandler()

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so recovery and logging can tag
	// their entries, then security headers, CORS and body limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(middleware.BodyLimitConfig{MaxBytes: cfg.HTTP.MaxBodySize}))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Revoker:    revoker,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	})

	// Swagger documentation endpoint, gated per config
	if cfg.Swagger.Enabled {
		swaggerGuard := middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtMiddleware)
		engine.GET("/swagger/*any", swaggerGuard, ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// API routes behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(jwtMiddleware)

	r.Register(authHandler).
		Register(userHandler).
		Register(donationHandler).
		Register(transactionHandler).
		Register(volunteerHandler).
		Register(organizationHandler).
		Register(uploadHandler).
		Register(systemHandler)

	r.Setup()

	// HTTP server
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

// healthHandler reports API and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
