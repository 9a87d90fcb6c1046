package dto

import (
	"strings"
	"time"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// CreateAppointmentRequest represents the request to book an appointment
type CreateAppointmentRequest struct {
	Name       string `json:"name" binding:"max=255"`
	Email      string `json:"email" binding:"max=255"`
	Phone      string `json:"phone" binding:"max=50"`
	Department string `json:"department" binding:"max=255"`
	Date       string `json:"date" binding:"max=50"`
	DoctorID   string `json:"doctorId"`
	Message    string `json:"message,omitempty"`
}

// Validate validates the CreateAppointmentRequest
func (r *CreateAppointmentRequest) Validate() (bool, string) {
	for _, field := range []string{r.Name, r.Email, r.Phone, r.Department, r.Date, r.DoctorID} {
		if strings.TrimSpace(field) == "" {
			return false, "Name, email, phone, department, date and doctorId are required"
		}
	}
	if valid, msg := validateEmail(r.Email); !valid {
		return false, msg
	}
	return true, ""
}

// AppointmentResponse represents an appointment in API response
type AppointmentResponse struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	DoctorID   string        `json:"doctorId"`
	User       PartyResponse `json:"user"`
	Doctor     PartyResponse `json:"doctor"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	Department string        `json:"department"`
	Date       string        `json:"date"`
	Message    string        `json:"message,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// AppointmentFromDomain converts a domain appointment to its response
func AppointmentFromDomain(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		DoctorID:   a.DoctorID,
		User:       PartyResponse{ID: a.UserID, Name: a.UserName, Email: a.UserEmail},
		Doctor:     PartyResponse{ID: a.DoctorID, Name: a.DoctorName, Email: a.DoctorEmail},
		Name:       a.Name,
		Email:      a.Email,
		Phone:      a.Phone,
		Department: a.Department,
		Date:       a.Date,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt,
	}
}

// AppointmentsFromDomain converts a list of appointments
func AppointmentsFromDomain(items []*domain.Appointment) []*AppointmentResponse {
	result := make([]*AppointmentResponse, 0, len(items))
	for _, a := range items {
		result = append(result, AppointmentFromDomain(a))
	}
	return result
}
