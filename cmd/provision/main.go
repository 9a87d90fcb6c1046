package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/prohmpiriya/healthcare-portal/internal/migrations"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/internal/service"
	"github.com/prohmpiriya/healthcare-portal/pkg/config"
	"github.com/prohmpiriya/healthcare-portal/pkg/database"
	"github.com/prohmpiriya/healthcare-portal/pkg/logger"
	"github.com/prohmpiriya/healthcare-portal/pkg/password"
	"github.com/prohmpiriya/healthcare-portal/pkg/redis"
	"github.com/prohmpiriya/healthcare-portal/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	seedFile := flag.String("seeds", cfg.Provisioning.SeedFile, "path to the seed YAML file")
	withPatients := flag.Bool("patients", cfg.Provisioning.SeedPatients, "also create demo patients")
	flag.Parse()

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: "provision",
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	seeds, err := service.LoadSeedFile(*seedFile)
	if err != nil {
		appLog.Fatal("Failed to load seeds", zap.String("seed_file", *seedFile), zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.DBName,
		SSLMode:        cfg.Database.SSLMode,
		MaxConns:       2,
		MinConns:       1,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		Retry:          &retry.Config{MaxRetries: 5, InitialInterval: 2 * time.Second},
	})
	if err != nil {
		appLog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx, migrations.Migrations); err != nil {
		appLog.Fatal("Database migration failed", zap.Error(err))
	}

	var userRepo repository.UserRepository = repository.NewPostgresUserRepository(db.Pool())

	// A running API caches the provider directory; new providers must drop it
	redisClient, err := redis.NewClient(ctx, &redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     2,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		Retry:        &retry.Config{MaxRetries: 0},
	})
	if err != nil {
		appLog.Warn("Redis unavailable, provider directory cache will expire on its own", zap.Error(err))
	} else {
		defer redisClient.Close()
		userRepo = repository.NewCachedUserRepository(userRepo, redisClient, cfg.Redis.DirectoryTTL, appLog)
	}

	provisioner := service.NewProvisioner(userRepo, password.NewHasher(cfg.Security.BcryptCost), nil, appLog)
	result, err := provisioner.Reconcile(ctx, seeds, *withPatients)
	if err != nil {
		appLog.Error("Provisioning failed", zap.Error(err))
		os.Exit(1)
	}

	for _, email := range result.Created {
		appLog.Info("created", zap.String("email", email))
	}
	for _, email := range result.Skipped {
		appLog.Info("already exists", zap.String("email", email))
	}
}
