package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/internal/repository"
	"github.com/prohmpiriya/healthcare-portal/pkg/telemetry"
)

// DefaultWellnessLimit caps list responses
const DefaultWellnessLimit = 100

// WellnessService records and reads patient wellness metrics
type WellnessService interface {
	// Record stores a record for patientID; only that patient may write
	Record(ctx context.Context, p access.Principal, patientID string, req *dto.CreateWellnessRequest) (*domain.WellnessRecord, error)
	List(ctx context.Context, p access.Principal, patientID string) ([]*domain.WellnessRecord, error)
	Latest(ctx context.Context, p access.Principal, patientID string) (*domain.WellnessRecord, error)
}

type wellnessService struct {
	wellnessRepo repository.WellnessRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewWellnessService creates a new WellnessService
func NewWellnessService(wellnessRepo repository.WellnessRepository, userRepo repository.UserRepository) WellnessService {
	return &wellnessService{wellnessRepo: wellnessRepo, userRepo: userRepo, now: time.Now}
}

func (s *wellnessService) Record(ctx context.Context, p access.Principal, patientID string, req *dto.CreateWellnessRequest) (*domain.WellnessRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.wellness.record")
	defer span.End()

	if err := access.CanWriteWellness(p, patientID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, domain.NewValidationError(msg)
	}

	record := req.ToDomain(patientID, s.now())
	if err := s.wellnessRepo.Create(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("wellness_id", record.ID))
	span.SetStatus(codes.Ok, "")
	return record, nil
}

func (s *wellnessService) List(ctx context.Context, p access.Principal, patientID string) ([]*domain.WellnessRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.wellness.list")
	defer span.End()

	if err := s.authorizeRead(ctx, p, patientID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	records, err := s.wellnessRepo.ListByPatient(ctx, patientID, DefaultWellnessLimit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(records)))
	return records, nil
}

func (s *wellnessService) Latest(ctx context.Context, p access.Principal, patientID string) (*domain.WellnessRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.wellness.latest")
	defer span.End()

	if err := s.authorizeRead(ctx, p, patientID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	record, err := s.wellnessRepo.Latest(ctx, patientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if record == nil {
		span.SetStatus(codes.Error, "no wellness records")
		return nil, domain.ErrWellnessNotFound
	}
	return record, nil
}

// authorizeRead applies the read rule; providers must name an existing patient
func (s *wellnessService) authorizeRead(ctx context.Context, p access.Principal, patientID string) error {
	if err := access.CanReadWellness(p, patientID); err != nil {
		return err
	}
	if p.ID == patientID {
		return nil
	}

	patient, err := s.userRepo.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil || !patient.IsPatient() {
		return domain.ErrPatientNotFound
	}
	return nil
}
