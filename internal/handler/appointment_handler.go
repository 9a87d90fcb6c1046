package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/internal/service"
	"github.com/prohmpiriya/healthcare-portal/pkg/response"
)

// AppointmentHandler handles appointment HTTP requests
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Create handles POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), principal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.AppointmentFromDomain(appointment)))
}

// List handles GET /api/v1/appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.appointmentService.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.AppointmentsFromDomain(appointments), len(appointments)))
}

// Get handles GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c *gin.Context) {
	appointment, err := h.appointmentService.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.AppointmentFromDomain(appointment)))
}

// Cancel handles DELETE /api/v1/appointments/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if err := h.appointmentService.Cancel(c.Request.Context(), principal(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"id": id, "message": "Appointment cancelled"}))
}
