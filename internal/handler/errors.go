package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/pkg/middleware"
	"github.com/prohmpiriya/healthcare-portal/pkg/response"
)

// respondError maps domain errors to status codes. Unknown errors are attached
// to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidation, validationErr.Message))
	case domain.IsValidationError(err):
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidation, err.Error()))
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidCredentials, "Invalid email or password"))
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, response.Unauthorized("Authentication required"))
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Forbidden("You do not have access to this resource"))
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeUserExists, "User with this email already exists"))
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("User not found"))
	case errors.Is(err, domain.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Patient not found"))
	case errors.Is(err, domain.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Appointment not found"))
	case errors.Is(err, domain.ErrWellnessNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("No wellness records found"))
	case domain.IsUnavailableError(err):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable("Service temporarily unavailable"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.InternalError("Internal server error"))
	}
}

// bindJSON decodes the body and answers 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// principal reads the identity the access guard attached to the request
func principal(c *gin.Context) access.Principal {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return access.Principal{}
	}
	return access.Principal{
		ID:    identity.UserID,
		Email: identity.Email,
		Role:  domain.Role(identity.Role),
	}
}
