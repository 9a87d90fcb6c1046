package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/pkg/telemetry"
)

// AppointmentService books, lists and cancels appointments
type AppointmentService interface {
	Create(ctx context.Context, p access.Principal, req *dto.CreateAppointmentRequest) (*domain.Appointment, error)
	List(ctx context.Context, p access.Principal) ([]*domain.Appointment, error)
	Get(ctx context.Context, p access.Principal, id string) (*domain.Appointment, error)
	Cancel(ctx context.Context, p access.Principal, id string) error
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(appointmentRepo repository.AppointmentRepository, userRepo repository.UserRepository) AppointmentService {
	return &appointmentService{appointmentRepo: appointmentRepo, userRepo: userRepo}
}

// Create books an appointment owned by the caller
func (s *appointmentService) Create(ctx context.Context, p access.Principal, req *dto.CreateAppointmentRequest) (*domain.Appointment, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.appointment.create")
	defer span.End()

	if err := access.CanCreateAppointment(p); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, domain.NewValidationError(msg)
	}

	doctor, err := s.userRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsProvider() {
		span.SetStatus(codes.Error, "doctor not found")
		return nil, domain.NewValidationError("doctorId must reference a provider")
	}

	appointment := domain.NewAppointment(
		p.ID,
		doctor.ID,
		strings.TrimSpace(req.Name),
		req.Email,
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.Department),
		strings.TrimSpace(req.Date),
		req.Message,
	)
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	appointment.DoctorName, appointment.DoctorEmail = doctor.Name, doctor.Email
	appointment.UserEmail = p.Email
	if caller, err := s.userRepo.GetByID(ctx, p.ID); err == nil && caller != nil {
		appointment.UserName, appointment.UserEmail = caller.Name, caller.Email
	}

	span.SetAttributes(
		attribute.String("appointment_id", appointment.ID),
		attribute.String("doctor_id", appointment.DoctorID),
	)
	span.SetStatus(codes.Ok, "")
	return appointment, nil
}

// List returns the caller's appointments, newest first
func (s *appointmentService) List(ctx context.Context, p access.Principal) ([]*domain.Appointment, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.appointment.list")
	defer span.End()

	scope, err := access.AppointmentListScope(p)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var appointments []*domain.Appointment
	if scope.DoctorID != "" {
		appointments, err = s.appointmentRepo.ListByDoctor(ctx, scope.DoctorID)
	} else {
		appointments, err = s.appointmentRepo.ListByUser(ctx, scope.UserID)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(appointments)))
	return appointments, nil
}

// Get returns one appointment visible to the caller
func (s *appointmentService) Get(ctx context.Context, p access.Principal, id string) (*domain.Appointment, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.appointment.get")
	defer span.End()

	appointment, err := s.load(ctx, p, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := access.CanViewAppointment(p, appointment); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return appointment, nil
}

// Cancel deletes an appointment owned by or assigned to the caller
func (s *appointmentService) Cancel(ctx context.Context, p access.Principal, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.appointment.cancel")
	defer span.End()

	appointment, err := s.load(ctx, p, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := access.CanCancelAppointment(p, appointment); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := s.appointmentRepo.Delete(ctx, appointment.ID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func (s *appointmentService) load(ctx context.Context, p access.Principal, id string) (*domain.Appointment, error) {
	if err := access.Authenticated(p); err != nil {
		return nil, err
	}
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.ErrAppointmentNotFound
	}
	return appointment, nil
}
