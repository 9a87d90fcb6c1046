package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/pkg/telemetry"
)

// UserService covers profiles, the provider directory and the patient roster
type UserService interface {
	GetProfile(ctx context.Context, p access.Principal) (*domain.User, error)
	UpdateProfile(ctx context.Context, p access.Principal, req *dto.UpdateProfileRequest) (*domain.User, error)
	// ListDoctors is public
	ListDoctors(ctx context.Context) ([]*domain.User, error)
	// ListPatients is restricted to providers
	ListPatients(ctx context.Context, p access.Principal) ([]*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, p access.Principal) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.get_profile")
	defer span.End()

	if err := access.Authenticated(p); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, p access.Principal, req *dto.UpdateProfileRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update_profile")
	defer span.End()

	if err := access.Authenticated(p); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, domain.NewValidationError(msg)
	}

	user, err := s.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil {
		span.SetStatus(codes.Error, "user not found")
		return nil, domain.ErrUserNotFound
	}

	req.ToDomain().Apply(user)
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return user, nil
}

func (s *userService) ListDoctors(ctx context.Context) ([]*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.list_doctors")
	defer span.End()

	doctors, err := s.userRepo.ListByRole(ctx, domain.RoleProvider)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(doctors)))
	return doctors, nil
}

func (s *userService) ListPatients(ctx context.Context, p access.Principal) ([]*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.list_patients")
	defer span.End()

	if err := access.CanListPatients(p); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	patients, err := s.userRepo.ListByRole(ctx, domain.RolePatient)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(patients)))
	return patients, nil
}
