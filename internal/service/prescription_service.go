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

// PrescriptionService issues and lists prescriptions
type PrescriptionService interface {
	// Create issues a prescription signed by the calling provider
	Create(ctx context.Context, p access.Principal, req *dto.CreatePrescriptionRequest) (*domain.PrescriptionView, error)
	List(ctx context.Context, p access.Principal) ([]*domain.PrescriptionView, error)
}

type prescriptionService struct {
	prescriptionRepo repository.PrescriptionRepository
	userRepo         repository.UserRepository
}

// NewPrescriptionService creates a new PrescriptionService
func NewPrescriptionService(prescriptionRepo repository.PrescriptionRepository, userRepo repository.UserRepository) PrescriptionService {
	return &prescriptionService{prescriptionRepo: prescriptionRepo, userRepo: userRepo}
}

func (s *prescriptionService) Create(ctx context.Context, p access.Principal, req *dto.CreatePrescriptionRequest) (*domain.PrescriptionView, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.prescription.create")
	defer span.End()

	if err := access.CanCreatePrescription(p); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, domain.NewValidationError(msg)
	}

	patient, err := s.userRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if patient == nil || !patient.IsPatient() {
		span.SetStatus(codes.Error, "patient not found")
		return nil, domain.ErrPatientNotFound
	}

	// the issuing doctor always comes from the token
	prescription := domain.NewPrescription(patient.ID, p.ID, req.MedicinesToDomain(), req.Diagnosis, req.Notes)
	if err := s.prescriptionRepo.Create(ctx, prescription); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	view, err := s.prescriptionRepo.GetByID(ctx, prescription.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if view == nil {
		view = &domain.PrescriptionView{
			Prescription: *prescription,
			PatientName:  patient.Name,
			PatientEmail: patient.Email,
			DoctorEmail:  p.Email,
		}
	}

	span.SetAttributes(
		attribute.String("prescription_id", prescription.ID),
		attribute.String("patient_id", patient.ID),
	)
	span.SetStatus(codes.Ok, "")
	return view, nil
}

func (s *prescriptionService) List(ctx context.Context, p access.Principal) ([]*domain.PrescriptionView, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.prescription.list")
	defer span.End()

	scope, err := access.PrescriptionListScope(p)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var views []*domain.PrescriptionView
	if scope.All {
		views, err = s.prescriptionRepo.ListAll(ctx)
	} else {
		views, err = s.prescriptionRepo.ListByPatient(ctx, scope.PatientID)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(views)))
	return views, nil
}
