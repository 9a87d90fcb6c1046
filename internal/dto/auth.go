package dto

import (
	"net/mail"
	"strings"
	"time"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

const (
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
	maxAge           = 150
)

// RegisterRequest represents the request to register a patient or provider
type RegisterRequest struct {
	Name      string `json:"name" binding:"max=255"`
	Email     string `json:"email" binding:"max=255"`
	Password  string `json:"password" binding:"max=72"`
	Role      string `json:"role"`
	Age       *int   `json:"age,omitempty"`
	BloodType string `json:"bloodType,omitempty" binding:"max=10"`
	Disease   string `json:"disease,omitempty" binding:"max=255"`
	Phone     string `json:"phone,omitempty" binding:"max=50"`
}

// Validate validates the RegisterRequest
func (r *RegisterRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" || r.Email == "" || r.Password == "" || r.Role == "" {
		return false, "Name, email, password and role are required"
	}
	if !domain.Role(r.Role).IsValid() {
		return false, "Role must be patient or provider"
	}
	if valid, msg := validateEmail(r.Email); !valid {
		return false, msg
	}
	if len(r.Password) < domain.MinPasswordLength {
		return false, "Password must be at least 6 characters"
	}
	if len(r.Password) > maxPasswordBytes {
		return false, "Password must be at most 72 bytes"
	}
	if r.Age != nil && *r.Age < 0 {
		return false, "Age cannot be negative"
	}
	if r.Age != nil && *r.Age > maxAge {
		return false, "Age must be at most 150"
	}
	return true, ""
}

// LoginRequest represents the request to log in under a role
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the LoginRequest
func (r *LoginRequest) Validate() (bool, string) {
	if r.Email == "" || r.Password == "" || r.Role == "" {
		return false, "Email, password and role are required"
	}
	return true, ""
}

// UpdateProfileRequest carries the editable profile fields; omitted fields stay unchanged
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" binding:"omitempty,max=20"`
	Address     *string `json:"address,omitempty"`
}

// Validate validates the UpdateProfileRequest
func (r *UpdateProfileRequest) Validate() (bool, string) {
	if r.Name == nil && r.Phone == nil && r.DateOfBirth == nil && r.Address == nil {
		return false, "At least one field must be provided"
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return false, "Name cannot be empty"
	}
	return true, ""
}

// ToDomain converts the request to a domain.ProfileUpdate
func (r *UpdateProfileRequest) ToDomain() *domain.ProfileUpdate {
	return &domain.ProfileUpdate{
		Name:        r.Name,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Address:     r.Address,
	}
}

// UserResponse is the public projection of a user. It never carries the password hash.
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Age         *int      `json:"age,omitempty"`
	BloodType   string    `json:"bloodType,omitempty"`
	Disease     string    `json:"disease,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

// DoctorResponse is an entry of the public provider directory
type DoctorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PatientResponse is an entry of the patient roster shown to providers
type PatientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	BloodType string    `json:"bloodType,omitempty"`
	Disease   string    `json:"disease,omitempty"`
	Age       *int      `json:"age,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserFromDomain converts a domain user to its public projection
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Age:         u.Age,
		BloodType:   u.BloodType,
		Disease:     u.Disease,
		Phone:       u.Phone,
		DateOfBirth: u.DateOfBirth,
		Address:     u.Address,
		CreatedAt:   u.CreatedAt,
	}
}

// DoctorsFromDomain converts providers to directory entries
func DoctorsFromDomain(users []*domain.User) []*DoctorResponse {
	result := make([]*DoctorResponse, 0, len(users))
	for _, u := range users {
		result = append(result, &DoctorResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return result
}

// PatientsFromDomain converts patients to roster entries
func PatientsFromDomain(users []*domain.User) []*PatientResponse {
	result := make([]*PatientResponse, 0, len(users))
	for _, u := range users {
		result = append(result, &PatientResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			BloodType: u.BloodType,
			Disease:   u.Disease,
			Age:       u.Age,
			CreatedAt: u.CreatedAt,
		})
	}
	return result
}

func validateEmail(email string) (bool, string) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false, "Invalid email format"
	}
	return true, ""
}
