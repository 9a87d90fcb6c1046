package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a visit request from a user to a provider
type Appointment struct {
	ID         string
	UserID     string
	DoctorID   string
	Name       string
	Email      string
	Phone      string
	Department string
	Date       string
	Message    string
	CreatedAt  time.Time

	// Party names and emails are joined in on read
	UserName    string
	UserEmail   string
	DoctorName  string
	DoctorEmail string
}

// NewAppointment creates an appointment owned by userID
func NewAppointment(userID, doctorID, name, email, phone, department, date, message string) *Appointment {
	return &Appointment{
		ID:         uuid.New().String(),
		UserID:     userID,
		DoctorID:   doctorID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Department: department,
		Date:       date,
		Message:    message,
		CreatedAt:  time.Now(),
	}
}
