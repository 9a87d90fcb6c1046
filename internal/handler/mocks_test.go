package handler

import (
	"context"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
)

// MockAuthService is a mock implementation of AuthService for testing
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	LoginFunc    func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetUserFunc  func(ctx context.Context, id string) (*domain.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// MockUserService is a mock implementation of UserService for testing
type MockUserService struct {
	GetProfileFunc    func(ctx context.Context, p access.Principal) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, p access.Principal, req *dto.UpdateProfileRequest) (*domain.User, error)
	ListDoctorsFunc   func(ctx context.Context) ([]*domain.User, error)
	ListPatientsFunc  func(ctx context.Context, p access.Principal) ([]*domain.User, error)
}

func (m *MockUserService) GetProfile(ctx context.Context, p access.Principal) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, p)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, p access.Principal, req *dto.UpdateProfileRequest) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, p, req)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) ListDoctors(ctx context.Context) ([]*domain.User, error) {
	if m.ListDoctorsFunc != nil {
		return m.ListDoctorsFunc(ctx)
	}
	return []*domain.User{}, nil
}

func (m *MockUserService) ListPatients(ctx context.Context, p access.Principal) ([]*domain.User, error) {
	if m.ListPatientsFunc != nil {
		return m.ListPatientsFunc(ctx, p)
	}
	return []*domain.User{}, nil
}

// MockAppointmentService is a mock implementation of AppointmentService for testing
type MockAppointmentService struct {
	CreateFunc func(ctx context.Context, p access.Principal, req *dto.CreateAppointmentRequest) (*domain.Appointment, error)
	ListFunc   func(ctx context.Context, p access.Principal) ([]*domain.Appointment, error)
	GetFunc    func(ctx context.Context, p access.Principal, id string) (*domain.Appointment, error)
	CancelFunc func(ctx context.Context, p access.Principal, id string) error
}

func (m *MockAppointmentService) Create(ctx context.Context, p access.Principal, req *dto.CreateAppointmentRequest) (*domain.Appointment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p, req)
	}
	return nil, nil
}

func (m *MockAppointmentService) List(ctx context.Context, p access.Principal) ([]*domain.Appointment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, p)
	}
	return []*domain.Appointment{}, nil
}

func (m *MockAppointmentService) Get(ctx context.Context, p access.Principal, id string) (*domain.Appointment, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, p, id)
	}
	return nil, domain.ErrAppointmentNotFound
}

func (m *MockAppointmentService) Cancel(ctx context.Context, p access.Principal, id string) error {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, p, id)
	}
	return nil
}

// MockPrescriptionService is a mock implementation of PrescriptionService for testing
type MockPrescriptionService struct {
	CreateFunc func(ctx context.Context, p access.Principal, req *dto.CreatePrescriptionRequest) (*domain.PrescriptionView, error)
	ListFunc   func(ctx context.Context, p access.Principal) ([]*domain.PrescriptionView, error)
}

func (m *MockPrescriptionService) Create(ctx context.Context, p access.Principal, req *dto.CreatePrescriptionRequest) (*domain.PrescriptionView, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p, req)
	}
	return nil, nil
}

func (m *MockPrescriptionService) List(ctx context.Context, p access.Principal) ([]*domain.PrescriptionView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, p)
	}
	return []*domain.PrescriptionView{}, nil
}

// MockWellnessService is a mock implementation of WellnessService for testing
type MockWellnessService struct {
	RecordFunc func(ctx context.Context, p access.Principal, patientID string, req *dto.CreateWellnessRequest) (*domain.WellnessRecord, error)
	ListFunc   func(ctx context.Context, p access.Principal, patientID string) ([]*domain.WellnessRecord, error)
	LatestFunc func(ctx context.Context, p access.Principal, patientID string) (*domain.WellnessRecord, error)
}

func (m *MockWellnessService) Record(ctx context.Context, p access.Principal, patientID string, req *dto.CreateWellnessRequest) (*domain.WellnessRecord, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, p, patientID, req)
	}
	return nil, nil
}

func (m *MockWellnessService) List(ctx context.Context, p access.Principal, patientID string) ([]*domain.WellnessRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, p, patientID)
	}
	return []*domain.WellnessRecord{}, nil
}

func (m *MockWellnessService) Latest(ctx context.Context, p access.Principal, patientID string) (*domain.WellnessRecord, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx, p, patientID)
	}
	return nil, domain.ErrWellnessNotFound
}
