package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
)

func prescriptionReq(patientID string) *dto.CreatePrescriptionRequest {
	return &dto.CreatePrescriptionRequest{
		PatientID: patientID,
		Medicines: []dto.MedicineRequest{{Name: "Amlodipine", Tablets: 30, FrequencyPerDay: 1, DurationDays: 30}},
		Diagnosis: "Hypertension",
	}
}

func TestPrescriptionService_DoctorIsAlwaysCaller(t *testing.T) {
	users := newMockUserRepository()
	repo := &mockPrescriptionRepository{}
	svc := NewPrescriptionService(repo, users)

	patient := seedUser(users, "p1", "p1@example.com", domain.RolePatient)
	doctor := seedUser(users, "d1", "d1@healthcare.com", domain.RoleProvider)
	seedUser(users, "d2", "d2@healthcare.com", domain.RoleProvider)

	view, err := svc.Create(context.Background(), principalOf(doctor), prescriptionReq(patient.ID))
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, view.DoctorID)
	assert.Equal(t, patient.ID, view.PatientID)
	require.Len(t, repo.prescriptions, 1)
	assert.Equal(t, doctor.ID, repo.prescriptions[0].DoctorID)
}

func TestPrescriptionService_CreateRejects(t *testing.T) {
	users := newMockUserRepository()
	repo := &mockPrescriptionRepository{}
	svc := NewPrescriptionService(repo, users)
	ctx := context.Background()

	patient := seedUser(users, "p1", "p1@example.com", domain.RolePatient)
	doctor := seedUser(users, "d1", "d1@healthcare.com", domain.RoleProvider)
	doctor2 := seedUser(users, "d2", "d2@healthcare.com", domain.RoleProvider)

	_, err := svc.Create(ctx, principalOf(patient), prescriptionReq(patient.ID))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(ctx, principalOf(doctor), prescriptionReq("missing"))
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)

	_, err = svc.Create(ctx, principalOf(doctor), prescriptionReq(doctor2.ID))
	assert.ErrorIs(t, err, domain.ErrPatientNotFound)

	req := prescriptionReq(patient.ID)
	req.Medicines = nil
	_, err = svc.Create(ctx, principalOf(doctor), req)
	assert.True(t, domain.IsValidationError(err))

	assert.Empty(t, repo.prescriptions)
}

func TestPrescriptionService_ListScopedByRole(t *testing.T) {
	users := newMockUserRepository()
	repo := &mockPrescriptionRepository{}
	svc := NewPrescriptionService(repo, users)
	ctx := context.Background()

	p1 := seedUser(users, "p1", "p1@example.com", domain.RolePatient)
	p2 := seedUser(users, "p2", "p2@example.com", domain.RolePatient)
	doctor := seedUser(users, "d1", "d1@healthcare.com", domain.RoleProvider)

	_, err := svc.Create(ctx, principalOf(doctor), prescriptionReq(p1.ID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, principalOf(doctor), prescriptionReq(p2.ID))
	require.NoError(t, err)

	all, err := svc.List(ctx, principalOf(doctor))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(ctx, principalOf(p1))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, p1.ID, own[0].PatientID)
}
