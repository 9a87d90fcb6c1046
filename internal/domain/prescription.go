package domain

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is one line of a prescription
type Medicine struct {
	Name            string `json:"name"`
	Tablets         int    `json:"tablets"`
	FrequencyPerDay int    `json:"frequencyPerDay"`
	DurationDays    int    `json:"durationDays"`
}

// Prescription is issued by a provider to a patient
type Prescription struct {
	ID        string
	PatientID string
	DoctorID  string
	Medicines []Medicine
	Diagnosis string
	Notes     string
	CreatedAt time.Time
}

// NewPrescription creates a prescription issued by doctorID
func NewPrescription(patientID, doctorID string, medicines []Medicine, diagnosis, notes string) *Prescription {
	return &Prescription{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Medicines: medicines,
		Diagnosis: diagnosis,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
}

// PrescriptionView is a prescription joined with the names of both parties
type PrescriptionView struct {
	Prescription
	PatientName  string
	PatientEmail string
	DoctorName   string
	DoctorEmail  string
}
