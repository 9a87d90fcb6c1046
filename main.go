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
	"go.uber.org/zap"

	"github.com/prohmpiriya/healthcare-portal/internal/di"
	"github.com/prohmpiriya/healthcare-portal/internal/handler"
	"github.com/prohmpiriya/healthcare-portal/internal/migrations"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/internal/service"
	"github.com/prohmpiriya/healthcare-portal/pkg/config"
	"github.com/prohmpiriya/healthcare-portal/pkg/database"
	"github.com/prohmpiriya/healthcare-portal/pkg/logger"
	"github.com/prohmpiriya/healthcare-portal/pkg/middleware"
	"github.com/prohmpiriya/healthcare-portal/pkg/mongodb"
	"github.com/prohmpiriya/healthcare-portal/pkg/password"
	"github.com/prohmpiriya/healthcare-portal/pkg/redis"
	"github.com/prohmpiriya/healthcare-portal/pkg/retry"
	"github.com/prohmpiriya/healthcare-portal/pkg/telemetry"
	"github.com/prohmpiriya/healthcare-portal/pkg/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting healthcare portal API", zap.String("version", cfg.App.Version))

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn("Failed to initialize telemetry", zap.Error(err))
	} else if telemetryCfg.Enabled {
		appLog.Info("Telemetry initialized", zap.String("collector", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Identity store
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
		Retry:           retry.DefaultConfig(),
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal("Database connection failed", zap.Error(err))
	}
	appLog.Info("Database connected", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	if cfg.Provisioning.MigrateOnBoot {
		if err := db.Migrate(ctx, migrations.Migrations); err != nil {
			appLog.Fatal("Database migration failed", zap.Error(err))
		}
		appLog.Info("Database migrations applied")
	}

	// Directory cache and idempotency keys; the API runs without them
	redisClient, err := redis.NewClient(ctx, &redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		Retry:        &retry.Config{MaxRetries: 2, InitialInterval: time.Second},
	})
	if err != nil {
		appLog.Warn("Redis unavailable, directory cache and idempotency disabled", zap.Error(err))
		redisClient = nil
	}

	// Wellness store
	mongoCfg := mongodb.DefaultConfig()
	mongoCfg.URI = cfg.MongoDB.URI
	mongoCfg.Database = cfg.MongoDB.Database
	mongoCfg.ConnectTimeout = cfg.MongoDB.ConnectTimeout
	mongoClient, err := mongodb.NewClient(ctx, mongoCfg)
	if err != nil {
		appLog.Fatal("MongoDB connection failed", zap.Error(err))
	}
	wellnessRepo := repository.NewMongoWellnessRepository(mongoClient.Database())
	if err := wellnessRepo.EnsureIndexes(ctx); err != nil {
		appLog.Warn("Failed to ensure wellness indexes", zap.Error(err))
	}

	tokens, err := token.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.Issuer)
	if err != nil {
		appLog.Fatal("Failed to create token manager", zap.Error(err))
	}

	// Build dependency injection container
	container, err := di.NewContainer(&di.ContainerConfig{
		ServiceName:  cfg.App.Name,
		DB:           db,
		Redis:        redisClient,
		Mongo:        mongoClient,
		WellnessRepo: wellnessRepo,
		Hasher:       password.NewHasher(cfg.Security.BcryptCost),
		Tokens:       tokens,
		DirectoryTTL: cfg.Redis.DirectoryTTL,
		Logger:       appLog,
	})
	if err != nil {
		appLog.Fatal("Failed to build container", zap.Error(err))
	}
	defer container.Close(context.Background())

	if cfg.Provisioning.OnStartup {
		provisionProviders(ctx, container.Provisioner, cfg.Provisioning, appLog)
	}

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))
	router.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins...)))
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}

	handler.RegisterRoutes(router, container.Handlers, container.RouteConfig(tokens))

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Healthcare portal API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
	}

	appLog.Info("Server exited gracefully")
}

// provisionProviders seeds the configured identities. Failure is logged and
// the API still starts; the provision command can be rerun at any time.
func provisionProviders(ctx context.Context, p *service.Provisioner, cfg config.ProvisioningConfig, appLog *logger.Logger) {
	seeds, err := service.LoadSeedFile(cfg.SeedFile)
	if err != nil {
		appLog.Warn("Skipping provisioning", zap.String("seed_file", cfg.SeedFile), zap.Error(err))
		return
	}

	result, err := p.Reconcile(ctx, seeds, cfg.SeedPatients)
	if err != nil {
		appLog.Error("Provisioning failed", zap.Error(err))
		return
	}
	appLog.Info("Provisioning complete",
		zap.Strings("created", result.Created),
		zap.Int("skipped", len(result.Skipped)),
	)
}
