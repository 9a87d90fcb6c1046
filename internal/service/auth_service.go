package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/pkg/telemetry"
	"github.com/prohmpiriya/healthcare-portal/pkg/token"
)

// PasswordHasher hashes and verifies plaintext passwords
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}

// TokenManager issues and verifies access tokens
type TokenManager interface {
	Issue(userID, email, role string) (string, *token.Claims, error)
	Verify(tokenString string) (*token.Claims, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register creates an identity and logs it in
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	// Login authenticates an identity under the requested role
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// authService implements AuthService
type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenManager

	// dummyHash is compared when no identity matches so both failure paths cost one bcrypt check
	dummyHash string
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenManager) (AuthService, error) {
	dummy, err := hasher.Hash("healthcare-portal-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}, nil
}

// Register registers a new user
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, domain.NewValidationError(msg)
	}
	span.SetAttributes(attribute.String("role", req.Role))

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if existing != nil {
		span.SetStatus(codes.Error, "email already registered")
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	user, err := domain.NewUser(req.Name, req.Email, hash, domain.Role(req.Role))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, domain.NewValidationError(err.Error())
	}
	user.Age = req.Age
	user.BloodType = req.BloodType
	user.Disease = req.Disease
	user.Phone = req.Phone

	// a concurrent registration that passed the pre-check fails here with ErrEmailTaken
	if err := s.userRepo.Create(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp, err := s.issue(user)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// Login authenticates a user
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, domain.NewValidationError(msg)
	}
	span.SetAttributes(attribute.String("role", req.Role))

	var user *domain.User
	role := domain.Role(req.Role)
	if role.IsValid() {
		var err error
		user, err = s.userRepo.GetByEmailAndRole(ctx, req.Email, role)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	digest := s.dummyHash
	if user != nil {
		digest = user.PasswordHash
	}
	ok, err := s.hasher.Verify(req.Password, digest)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if user == nil || !ok {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.issue(user)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// GetUser retrieves user by ID
func (s *authService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.get_user")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, id)
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

func (s *authService) issue(user *domain.User) (*dto.AuthResponse, error) {
	signed, claims, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &dto.AuthResponse{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt,
		User:      dto.UserFromDomain(user),
	}, nil
}
