// Package access holds the role and ownership predicates evaluated after a
// request has been authenticated. Every rule checks authentication first,
// then role, then ownership.
package access

import (
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// Principal is the identity resolved from a verified token
type Principal struct {
	ID    string
	Email string
	Role  domain.Role
}

// IsAuthenticated reports whether the principal carries a subject and a known role
func (p Principal) IsAuthenticated() bool {
	return p.ID != "" && p.Role.IsValid()
}

// IsProvider reports whether the principal is an authenticated provider
func (p Principal) IsProvider() bool {
	return p.IsAuthenticated() && p.Role == domain.RoleProvider
}

// IsPatient reports whether the principal is an authenticated patient
func (p Principal) IsPatient() bool {
	return p.IsAuthenticated() && p.Role == domain.RolePatient
}

// Authenticated fails with ErrUnauthenticated for an empty principal
func Authenticated(p Principal) error {
	if !p.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// RequireProvider allows providers only
func RequireProvider(p Principal) error {
	if err := Authenticated(p); err != nil {
		return err
	}
	if p.Role != domain.RoleProvider {
		return domain.ErrForbidden
	}
	return nil
}

// RequirePatient allows patients only
func RequirePatient(p Principal) error {
	if err := Authenticated(p); err != nil {
		return err
	}
	if p.Role != domain.RolePatient {
		return domain.ErrForbidden
	}
	return nil
}

// AppointmentScope selects which appointments a principal may list
type AppointmentScope struct {
	// DoctorID is set for providers
	DoctorID string
	// UserID is set for patients
	UserID string
}

// AppointmentListScope returns the listing filter for p
func AppointmentListScope(p Principal) (AppointmentScope, error) {
	if err := Authenticated(p); err != nil {
		return AppointmentScope{}, err
	}
	if p.Role == domain.RoleProvider {
		return AppointmentScope{DoctorID: p.ID}, nil
	}
	return AppointmentScope{UserID: p.ID}, nil
}

// CanCreateAppointment needs only authentication
func CanCreateAppointment(p Principal) error {
	return Authenticated(p)
}

// CanViewAppointment allows the creator and the assigned provider
func CanViewAppointment(p Principal, a *domain.Appointment) error {
	if err := Authenticated(p); err != nil {
		return err
	}
	if p.Role == domain.RoleProvider && a.DoctorID == p.ID {
		return nil
	}
	if p.Role == domain.RolePatient && a.UserID == p.ID {
		return nil
	}
	return domain.ErrForbidden
}

// CanCancelAppointment has the same audience as viewing
func CanCancelAppointment(p Principal, a *domain.Appointment) error {
	return CanViewAppointment(p, a)
}

// CanCreatePrescription allows providers only
func CanCreatePrescription(p Principal) error {
	return RequireProvider(p)
}

// PrescriptionScope selects which prescriptions a principal may list
type PrescriptionScope struct {
	All       bool
	PatientID string
}

// PrescriptionListScope gives providers every prescription and patients their own
func PrescriptionListScope(p Principal) (PrescriptionScope, error) {
	if err := Authenticated(p); err != nil {
		return PrescriptionScope{}, err
	}
	if p.Role == domain.RoleProvider {
		return PrescriptionScope{All: true}, nil
	}
	return PrescriptionScope{PatientID: p.ID}, nil
}

// CanListPatients allows providers only
func CanListPatients(p Principal) error {
	return RequireProvider(p)
}

// CanReadWellness allows a patient their own records and a provider any patient's
func CanReadWellness(p Principal, patientID string) error {
	if err := Authenticated(p); err != nil {
		return err
	}
	if p.Role == domain.RoleProvider {
		return nil
	}
	if p.ID == patientID {
		return nil
	}
	return domain.ErrForbidden
}

// CanWriteWellness allows only the patient who owns the records
func CanWriteWellness(p Principal, patientID string) error {
	if err := RequirePatient(p); err != nil {
		return err
	}
	if p.ID != patientID {
		return domain.ErrForbidden
	}
	return nil
}
