package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/pkg/database"
)

const appointmentSelect = `
	SELECT a.id, a.user_id, a.doctor_id, a.name, a.email, a.phone, a.department, a.date,
		COALESCE(a.message, ''), a.created_at,
		COALESCE(uu.name, ''), COALESCE(uu.email, ''),
		COALESCE(du.name, ''), COALESCE(du.email, '')
	FROM appointments a
	LEFT JOIN users uu ON uu.id = a.user_id
	LEFT JOIN users du ON du.id = a.doctor_id`

// PostgresAppointmentRepository implements AppointmentRepository using PostgreSQL
type PostgresAppointmentRepository struct {
	db database.Querier
}

// NewPostgresAppointmentRepository creates a new PostgresAppointmentRepository
func NewPostgresAppointmentRepository(db database.Querier) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{db: db}
}

// Create inserts an appointment
func (r *PostgresAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	query := `
		INSERT INTO appointments (id, user_id, doctor_id, name, email, phone, department, date, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.DoctorID,
		a.Name,
		a.Email,
		a.Phone,
		a.Department,
		a.Date,
		a.Message,
		a.CreatedAt,
	)
	return mapPgError(err)
}

// GetByID retrieves an appointment with both party names
func (r *PostgresAppointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	a, err := scanAppointment(r.db.QueryRow(ctx, appointmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapPgError(err)
	}
	return a, nil
}

// ListByUser lists appointments created by a user, newest first
func (r *PostgresAppointmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	return r.list(ctx, appointmentSelect+` WHERE a.user_id = $1 ORDER BY a.created_at DESC`, userID)
}

// ListByDoctor lists appointments assigned to a provider, newest first
func (r *PostgresAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Appointment, error) {
	return r.list(ctx, appointmentSelect+` WHERE a.doctor_id = $1 ORDER BY a.created_at DESC`, doctorID)
}

// Delete removes an appointment
func (r *PostgresAppointmentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *PostgresAppointmentRepository) list(ctx context.Context, query, id string) ([]*domain.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return []*domain.Appointment{}, nil
	}
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, mapPgError(err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	return appointments, nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.DoctorID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.Department,
		&a.Date,
		&a.Message,
		&a.CreatedAt,
		&a.UserName,
		&a.UserEmail,
		&a.DoctorName,
		&a.DoctorEmail,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}
