package repository

import (
	"context"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// UserRepository is the credential store.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	// Create inserts a user; a duplicate email yields domain.ErrEmailTaken
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByEmailAndRole treats a role mismatch as no match
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
	// ListByRole returns users of the role, newest first
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// UpdateProfile persists the editable profile fields
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// AppointmentRepository stores appointments
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// PrescriptionRepository stores prescriptions
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *domain.Prescription) error
	GetByID(ctx context.Context, id string) (*domain.PrescriptionView, error)
	ListAll(ctx context.Context) ([]*domain.PrescriptionView, error)
	ListByPatient(ctx context.Context, patientID string) ([]*domain.PrescriptionView, error)
}

// WellnessRepository stores wellness records
type WellnessRepository interface {
	// Create assigns the record id
	Create(ctx context.Context, record *domain.WellnessRecord) error
	// ListByPatient returns records newest first; limit <= 0 means no limit
	ListByPatient(ctx context.Context, patientID string, limit int) ([]*domain.WellnessRecord, error)
	// Latest returns (nil, nil) when the patient has no records
	Latest(ctx context.Context, patientID string) (*domain.WellnessRecord, error)
}
