package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prohmpiriya/healthcare-portal/internal/handler"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/internal/service"
	"github.com/prohmpiriya/healthcare-portal/pkg/database"
	"github.com/prohmpiriya/healthcare-portal/pkg/logger"
	"github.com/prohmpiriya/healthcare-portal/pkg/middleware"
	"github.com/prohmpiriya/healthcare-portal/pkg/mongodb"
	"github.com/prohmpiriya/healthcare-portal/pkg/redis"
	"github.com/prohmpiriya/healthcare-portal/pkg/retry"
)

// Container holds all dependencies of the portal API
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client
	Mongo *mongodb.Client

	// Repositories
	UserRepo         repository.UserRepository
	AppointmentRepo  repository.AppointmentRepository
	PrescriptionRepo repository.PrescriptionRepository
	WellnessRepo     repository.WellnessRepository

	// Services
	AuthService         service.AuthService
	UserService         service.UserService
	AppointmentService  service.AppointmentService
	PrescriptionService service.PrescriptionService
	WellnessService     service.WellnessService
	Provisioner         *service.Provisioner

	// Handlers
	Handlers *handler.Handlers
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	ServiceName string
	DB          *database.PostgresDB
	// Redis is optional; without it the directory is read straight from postgres
	Redis *redis.Client
	Mongo *mongodb.Client

	// Repository overrides, mainly for tests. Nil fields are built from the connections.
	UserRepo         repository.UserRepository
	AppointmentRepo  repository.AppointmentRepository
	PrescriptionRepo repository.PrescriptionRepository
	WellnessRepo     repository.WellnessRepository

	Hasher       service.PasswordHasher
	Tokens       service.TokenManager
	DirectoryTTL time.Duration
	Retry        *retry.Config
	Logger       *logger.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	if cfg.Hasher == nil || cfg.Tokens == nil {
		return nil, fmt.Errorf("hasher and token manager are required")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}

	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
		Mongo: cfg.Mongo,
	}

	// Initialize repositories
	c.UserRepo = cfg.UserRepo
	if c.UserRepo == nil {
		c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())
	}
	if c.Redis != nil {
		c.UserRepo = repository.NewCachedUserRepository(c.UserRepo, c.Redis, cfg.DirectoryTTL, log)
	}
	c.AppointmentRepo = cfg.AppointmentRepo
	if c.AppointmentRepo == nil {
		c.AppointmentRepo = repository.NewPostgresAppointmentRepository(c.DB.Pool())
	}
	c.PrescriptionRepo = cfg.PrescriptionRepo
	if c.PrescriptionRepo == nil {
		c.PrescriptionRepo = repository.NewPostgresPrescriptionRepository(c.DB.Pool())
	}
	c.WellnessRepo = cfg.WellnessRepo
	if c.WellnessRepo == nil {
		c.WellnessRepo = repository.NewMongoWellnessRepository(c.Mongo.Database())
	}

	// Initialize services
	authService, err := service.NewAuthService(c.UserRepo, cfg.Hasher, cfg.Tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth service: %w", err)
	}
	c.AuthService = authService
	c.UserService = service.NewUserService(c.UserRepo)
	c.AppointmentService = service.NewAppointmentService(c.AppointmentRepo, c.UserRepo)
	c.PrescriptionService = service.NewPrescriptionService(c.PrescriptionRepo, c.UserRepo)
	c.WellnessService = service.NewWellnessService(c.WellnessRepo, c.UserRepo)
	c.Provisioner = service.NewProvisioner(c.UserRepo, cfg.Hasher, cfg.Retry, log)

	// Initialize handlers
	c.Handlers = &handler.Handlers{
		Health:       handler.NewHealthHandler(cfg.ServiceName, c.healthChecks()),
		Auth:         handler.NewAuthHandler(c.AuthService),
		User:         handler.NewUserHandler(c.UserService),
		Appointment:  handler.NewAppointmentHandler(c.AppointmentService),
		Prescription: handler.NewPrescriptionHandler(c.PrescriptionService),
		Wellness:     handler.NewWellnessHandler(c.WellnessService),
	}

	return c, nil
}

// RouteConfig builds the guard and idempotency middleware for the router
func (c *Container) RouteConfig(verifier middleware.TokenVerifier) handler.RouteConfig {
	routes := handler.RouteConfig{
		Guard: middleware.JWTMiddleware(&middleware.JWTConfig{Verifier: verifier}),
	}
	if c.Redis != nil {
		routes.Idempotency = middleware.IdempotencyMiddleware(middleware.DefaultIdempotencyConfig(c.Redis))
	}
	return routes
}

func (c *Container) healthChecks() map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{}
	if c.DB != nil {
		checks["postgres"] = c.DB.HealthCheck
	}
	if c.Redis != nil {
		checks["redis"] = c.Redis.HealthCheck
	}
	if c.Mongo != nil {
		checks["mongodb"] = c.Mongo.HealthCheck
	}
	return checks
}

// Close releases the connections held by the container
func (c *Container) Close(ctx context.Context) {
	if c.Mongo != nil {
		_ = c.Mongo.Close(ctx)
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
