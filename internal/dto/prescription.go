package dto

import (
	"strings"
	"time"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// MedicineRequest is one medicine line of a prescription
type MedicineRequest struct {
	Name            string `json:"name"`
	Tablets         int    `json:"tablets"`
	FrequencyPerDay int    `json:"frequencyPerDay"`
	DurationDays    int    `json:"durationDays"`
}

// CreatePrescriptionRequest represents the request to issue a prescription.
// The issuing doctor is always the caller.
type CreatePrescriptionRequest struct {
	PatientID string            `json:"patientId"`
	Medicines []MedicineRequest `json:"medicines"`
	Diagnosis string            `json:"diagnosis,omitempty"`
	Notes     string            `json:"notes,omitempty"`
}

// Validate validates the CreatePrescriptionRequest
func (r *CreatePrescriptionRequest) Validate() (bool, string) {
	if r.PatientID == "" {
		return false, "patientId is required"
	}
	if len(r.Medicines) == 0 {
		return false, "At least one medicine is required"
	}
	for _, m := range r.Medicines {
		if strings.TrimSpace(m.Name) == "" {
			return false, "Medicine name is required"
		}
		if m.Tablets < 0 || m.FrequencyPerDay < 0 || m.DurationDays < 0 {
			return false, "Medicine quantities cannot be negative"
		}
	}
	return true, ""
}

// MedicinesToDomain converts the medicine lines
func (r *CreatePrescriptionRequest) MedicinesToDomain() []domain.Medicine {
	medicines := make([]domain.Medicine, 0, len(r.Medicines))
	for _, m := range r.Medicines {
		medicines = append(medicines, domain.Medicine{
			Name:            strings.TrimSpace(m.Name),
			Tablets:         m.Tablets,
			FrequencyPerDay: m.FrequencyPerDay,
			DurationDays:    m.DurationDays,
		})
	}
	return medicines
}

// PartyResponse names one side of a prescription
type PartyResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// PrescriptionResponse represents a prescription in API response
type PrescriptionResponse struct {
	ID        string            `json:"id"`
	Patient   PartyResponse     `json:"patient"`
	Doctor    PartyResponse     `json:"doctor"`
	Medicines []domain.Medicine `json:"medicines"`
	Diagnosis string            `json:"diagnosis,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// PrescriptionFromDomain converts a prescription view to its response
func PrescriptionFromDomain(p *domain.PrescriptionView) *PrescriptionResponse {
	return &PrescriptionResponse{
		ID:        p.ID,
		Patient:   PartyResponse{ID: p.PatientID, Name: p.PatientName, Email: p.PatientEmail},
		Doctor:    PartyResponse{ID: p.DoctorID, Name: p.DoctorName, Email: p.DoctorEmail},
		Medicines: p.Medicines,
		Diagnosis: p.Diagnosis,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// PrescriptionsFromDomain converts a list of prescription views
func PrescriptionsFromDomain(items []*domain.PrescriptionView) []*PrescriptionResponse {
	result := make([]*PrescriptionResponse, 0, len(items))
	for _, p := range items {
		result = append(result, PrescriptionFromDomain(p))
	}
	return result
}
