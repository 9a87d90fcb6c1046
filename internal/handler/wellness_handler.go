package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/internal/service"
	"github.com/prohmpiriya/healthcare-portal/pkg/response"
)

// WellnessHandler handles wellness HTTP requests
type WellnessHandler struct {
	wellnessService service.WellnessService
}

// NewWellnessHandler creates a new WellnessHandler
func NewWellnessHandler(wellnessService service.WellnessService) *WellnessHandler {
	return &WellnessHandler{wellnessService: wellnessService}
}

// CreateMine handles POST /api/v1/wellness/my-wellness
func (h *WellnessHandler) CreateMine(c *gin.Context) {
	var req dto.CreateWellnessRequest
	if !bindJSON(c, &req) {
		return
	}

	p := principal(c)
	record, err := h.wellnessService.Record(c.Request.Context(), p, p.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.WellnessFromDomain(record)))
}

// ListMine handles GET /api/v1/wellness/my-wellness
func (h *WellnessHandler) ListMine(c *gin.Context) {
	p := principal(c)
	h.list(c, p.ID)
}

// LatestMine handles GET /api/v1/wellness/my-wellness/latest
func (h *WellnessHandler) LatestMine(c *gin.Context) {
	p := principal(c)
	h.latest(c, p.ID)
}

// ListForPatient handles GET /api/v1/wellness/patient/:id
func (h *WellnessHandler) ListForPatient(c *gin.Context) {
	h.list(c, c.Param("id"))
}

// LatestForPatient handles GET /api/v1/wellness/patient/:id/latest
func (h *WellnessHandler) LatestForPatient(c *gin.Context) {
	h.latest(c, c.Param("id"))
}

func (h *WellnessHandler) list(c *gin.Context, patientID string) {
	records, err := h.wellnessService.List(c.Request.Context(), principal(c), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.WellnessListFromDomain(records), len(records)))
}

func (h *WellnessHandler) latest(c *gin.Context, patientID string) {
	record, err := h.wellnessService.Latest(c.Request.Context(), principal(c), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.WellnessFromDomain(record)))
}
