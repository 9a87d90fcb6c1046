package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
)

func TestUserService_Directory(t *testing.T) {
	users := newMockUserRepository()
	svc := NewUserService(users)

	older := seedUser(users, "d1", "d1@healthcare.com", domain.RoleProvider)
	older.CreatedAt = time.Now().Add(-time.Hour)
	seedUser(users, "d2", "d2@healthcare.com", domain.RoleProvider)
	seedUser(users, "p1", "p1@example.com", domain.RolePatient)

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "d2", doctors[0].ID)
}

func TestUserService_ListPatientsProviderOnly(t *testing.T) {
	users := newMockUserRepository()
	svc := NewUserService(users)

	patient := seedUser(users, "p1", "p1@example.com", domain.RolePatient)
	doctor := seedUser(users, "d1", "d1@healthcare.com", domain.RoleProvider)

	patients, err := svc.ListPatients(context.Background(), principalOf(doctor))
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, patient.ID, patients[0].ID)

	_, err = svc.ListPatients(context.Background(), principalOf(patient))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListPatients(context.Background(), access.Principal{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUserService_Profile(t *testing.T) {
	users := newMockUserRepository()
	svc := NewUserService(users)
	patient := seedUser(users, "p1", "p1@example.com", domain.RolePatient)
	ctx := context.Background()

	got, err := svc.GetProfile(ctx, principalOf(patient))
	require.NoError(t, err)
	assert.Equal(t, patient.Email, got.Email)

	phone := "555-0199"
	updated, err := svc.UpdateProfile(ctx, principalOf(patient), &dto.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, domain.RolePatient, updated.Role)

	_, err = svc.UpdateProfile(ctx, principalOf(patient), &dto.UpdateProfileRequest{})
	assert.True(t, domain.IsValidationError(err))

	_, err = svc.GetProfile(ctx, access.Principal{ID: "gone", Role: domain.RolePatient})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
