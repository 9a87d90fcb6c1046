package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role tags an identity as patient or provider
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RolePatient || r == RoleProvider
}

func (r Role) String() string {
	return string(r)
}

// MinPasswordLength is the shortest accepted plaintext password
const MinPasswordLength = 6

// User is a stored identity. PasswordHash never leaves the service layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Age          *int
	BloodType    string
	Disease      string
	Phone        string
	DateOfBirth  string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds a user with a fresh id. The caller supplies an already hashed password.
func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if passwordHash == "" {
		return nil, errors.New("password hash is required")
	}
	if !role.IsValid() {
		return nil, errors.New("role must be patient or provider")
	}

	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsProvider reports whether the user is a provider
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// IsPatient reports whether the user is a patient
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

// ProfileUpdate holds the editable profile attributes; nil fields are left unchanged
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	DateOfBirth *string
	Address     *string
}

// Apply copies the set fields onto u
func (p *ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	u.UpdatedAt = time.Now()
}
