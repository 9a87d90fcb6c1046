package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/internal/service"
	"github.com/prohmpiriya/healthcare-portal/pkg/response"
)

// PrescriptionHandler handles prescription HTTP requests
type PrescriptionHandler struct {
	prescriptionService service.PrescriptionService
}

// NewPrescriptionHandler creates a new PrescriptionHandler
func NewPrescriptionHandler(prescriptionService service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

// Create handles POST /api/v1/prescriptions
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req dto.CreatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}

	prescription, err := h.prescriptionService.Create(c.Request.Context(), principal(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.PrescriptionFromDomain(prescription)))
}

// List handles GET /api/v1/prescriptions
func (h *PrescriptionHandler) List(c *gin.Context) {
	prescriptions, err := h.prescriptionService.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.PrescriptionsFromDomain(prescriptions), len(prescriptions)))
}
