package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/pkg/middleware"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Appointment  *AppointmentHandler
	Prescription *PrescriptionHandler
	Wellness     *WellnessHandler
}

// RouteConfig carries the middleware the routes are wrapped in
type RouteConfig struct {
	// Guard authenticates bearer tokens
	Guard gin.HandlerFunc
	// Idempotency deduplicates writes; nil disables it
	Idempotency gin.HandlerFunc
}

// RegisterRoutes mounts /health, /ready and the /api/v1 tree
func RegisterRoutes(r *gin.Engine, h *Handlers, cfg RouteConfig) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	writes := []gin.HandlerFunc{}
	if cfg.Idempotency != nil {
		writes = append(writes, cfg.Idempotency)
	}
	providerOnly := middleware.RequireRole(string(domain.RoleProvider))
	patientOnly := middleware.RequireRole(string(domain.RolePatient))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/verify", cfg.Guard, h.Auth.Me)
		auth.GET("/me", cfg.Guard, h.Auth.Me)

		v1.GET("/doctors", h.User.ListDoctors)

		protected := v1.Group("")
		protected.Use(cfg.Guard)
		protected.Use(writes...)

		protected.GET("/patients", providerOnly, h.User.ListPatients)

		users := protected.Group("/users")
		users.GET("/profile", h.User.GetProfile)
		users.PUT("/profile", h.User.UpdateProfile)

		appointments := protected.Group("/appointments")
		appointments.POST("", h.Appointment.Create)
		appointments.GET("", h.Appointment.List)
		appointments.GET("/:id", h.Appointment.Get)
		appointments.DELETE("/:id", h.Appointment.Cancel)

		prescriptions := protected.Group("/prescriptions")
		prescriptions.POST("", providerOnly, h.Prescription.Create)
		prescriptions.GET("", h.Prescription.List)

		wellness := protected.Group("/wellness")
		wellness.POST("/my-wellness", patientOnly, h.Wellness.CreateMine)
		wellness.GET("/my-wellness", h.Wellness.ListMine)
		wellness.GET("/my-wellness/latest", h.Wellness.LatestMine)
		wellness.GET("/patient/:id", providerOnly, h.Wellness.ListForPatient)
		wellness.GET("/patient/:id/latest", providerOnly, h.Wellness.LatestForPatient)
	}
}
