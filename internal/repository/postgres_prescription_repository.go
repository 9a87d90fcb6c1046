package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/pkg/database"
)

const prescriptionSelect = `
	SELECT p.id, p.patient_id, p.doctor_id, p.medicines,
		COALESCE(p.diagnosis, ''), COALESCE(p.notes, ''), p.created_at,
		COALESCE(pu.name, ''), COALESCE(pu.email, ''),
		COALESCE(du.name, ''), COALESCE(du.email, '')
	FROM prescriptions p
	LEFT JOIN users pu ON pu.id = p.patient_id
	LEFT JOIN users du ON du.id = p.doctor_id`

// PostgresPrescriptionRepository implements PrescriptionRepository using PostgreSQL.
// Medicines are stored as a JSONB array.
type PostgresPrescriptionRepository struct {
	db database.Querier
}

// NewPostgresPrescriptionRepository creates a new PostgresPrescriptionRepository
func NewPostgresPrescriptionRepository(db database.Querier) *PostgresPrescriptionRepository {
	return &PostgresPrescriptionRepository{db: db}
}

// Create inserts a prescription
func (r *PostgresPrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) error {
	query := `
		INSERT INTO prescriptions (id, patient_id, doctor_id, medicines, diagnosis, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.PatientID,
		p.DoctorID,
		p.Medicines,
		p.Diagnosis,
		p.Notes,
		p.CreatedAt,
	)
	return mapPgError(err)
}

// GetByID retrieves a prescription with both party names
func (r *PostgresPrescriptionRepository) GetByID(ctx context.Context, id string) (*domain.PrescriptionView, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	view, err := scanPrescription(r.db.QueryRow(ctx, prescriptionSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPgError(err)
	}
	return view, nil
}

// ListAll lists every prescription, newest first
func (r *PostgresPrescriptionRepository) ListAll(ctx context.Context) ([]*domain.PrescriptionView, error) {
	return r.list(ctx, prescriptionSelect+` ORDER BY p.created_at DESC`)
}

// ListByPatient lists a patient's prescriptions, newest first
func (r *PostgresPrescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]*domain.PrescriptionView, error) {
	if _, err := uuid.Parse(patientID); err != nil {
		return []*domain.PrescriptionView{}, nil
	}
	return r.list(ctx, prescriptionSelect+` WHERE p.patient_id = $1 ORDER BY p.created_at DESC`, patientID)
}

func (r *PostgresPrescriptionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.PrescriptionView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	views := make([]*domain.PrescriptionView, 0)
	for rows.Next() {
		view, err := scanPrescription(rows)
		if err != nil {
			return nil, mapPgError(err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	return views, nil
}

func scanPrescription(row pgx.Row) (*domain.PrescriptionView, error) {
	v := &domain.PrescriptionView{}
	err := row.Scan(
		&v.ID,
		&v.PatientID,
		&v.DoctorID,
		&v.Medicines,
		&v.Diagnosis,
		&v.Notes,
		&v.CreatedAt,
		&v.PatientName,
		&v.PatientEmail,
		&v.DoctorName,
		&v.DoctorEmail,
	)
	if err != nil {
		return nil, err
	}
	if v.Medicines == nil {
		v.Medicines = []domain.Medicine{}
	}
	return v, nil
}
