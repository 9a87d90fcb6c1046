package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// mockUserRepository is a map-backed UserRepository
type mockUserRepository struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	emailIndex  map[string]*domain.User
	createError error
	lookupError error
	creates     int
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:      make(map[string]*domain.User),
		emailIndex: make(map[string]*domain.User),
	}
}

func (r *mockUserRepository) add(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	r.emailIndex[u.Email] = u
	return u
}

func (r *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createError != nil {
		return r.createError
	}
	if _, exists := r.emailIndex[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	r.users[user.ID] = user
	r.emailIndex[user.Email] = user
	return nil
}

func (r *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupError != nil {
		return nil, r.lookupError
	}
	return r.users[id], nil
}

func (r *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupError != nil {
		return nil, r.lookupError
	}
	return r.emailIndex[email], nil
}

func (r *mockUserRepository) GetByEmailAndRole(_ context.Context, email string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupError != nil {
		return nil, r.lookupError
	}
	u := r.emailIndex[email]
	if u == nil || u.Role != role {
		return nil, nil
	}
	return u, nil
}

func (r *mockUserRepository) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupError != nil {
		return nil, r.lookupError
	}
	result := make([]*domain.User, 0)
	for _, u := range r.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *mockUserRepository) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

// mockAppointmentRepository is a map-backed AppointmentRepository
type mockAppointmentRepository struct {
	appointments map[string]*domain.Appointment
	deleted      []string
}

func newMockAppointmentRepository() *mockAppointmentRepository {
	return &mockAppointmentRepository{appointments: make(map[string]*domain.Appointment)}
}

func (r *mockAppointmentRepository) Create(_ context.Context, a *domain.Appointment) error {
	r.appointments[a.ID] = a
	return nil
}

func (r *mockAppointmentRepository) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	return r.appointments[id], nil
}

func (r *mockAppointmentRepository) ListByUser(_ context.Context, userID string) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool { return a.UserID == userID }), nil
}

func (r *mockAppointmentRepository) ListByDoctor(_ context.Context, doctorID string) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *mockAppointmentRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.appointments[id]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *mockAppointmentRepository) filter(keep func(*domain.Appointment) bool) []*domain.Appointment {
	result := make([]*domain.Appointment, 0)
	for _, a := range r.appointments {
		if keep(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

// mockPrescriptionRepository is a slice-backed PrescriptionRepository
type mockPrescriptionRepository struct {
	prescriptions []*domain.Prescription
}

func (r *mockPrescriptionRepository) Create(_ context.Context, p *domain.Prescription) error {
	r.prescriptions = append(r.prescriptions, p)
	return nil
}

func (r *mockPrescriptionRepository) GetByID(_ context.Context, id string) (*domain.PrescriptionView, error) {
	for _, p := range r.prescriptions {
		if p.ID == id {
			return &domain.PrescriptionView{Prescription: *p}, nil
		}
	}
	return nil, nil
}

func (r *mockPrescriptionRepository) ListAll(context.Context) ([]*domain.PrescriptionView, error) {
	views := make([]*domain.PrescriptionView, 0, len(r.prescriptions))
	for _, p := range r.prescriptions {
		views = append(views, &domain.PrescriptionView{Prescription: *p})
	}
	return views, nil
}

func (r *mockPrescriptionRepository) ListByPatient(_ context.Context, patientID string) ([]*domain.PrescriptionView, error) {
	views := make([]*domain.PrescriptionView, 0)
	for _, p := range r.prescriptions {
		if p.PatientID == patientID {
			views = append(views, &domain.PrescriptionView{Prescription: *p})
		}
	}
	return views, nil
}

// mockWellnessRepository is a slice-backed WellnessRepository
type mockWellnessRepository struct {
	records   []*domain.WellnessRecord
	createErr error
	nextID    int
}

func (r *mockWellnessRepository) Create(_ context.Context, w *domain.WellnessRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	w.ID = fmt.Sprintf("w%d", r.nextID)
	r.records = append(r.records, w)
	return nil
}

func (r *mockWellnessRepository) ListByPatient(_ context.Context, patientID string, limit int) ([]*domain.WellnessRecord, error) {
	result := make([]*domain.WellnessRecord, 0)
	for _, w := range r.records {
		if w.PatientID == patientID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RecordedAt.After(result[j].RecordedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *mockWellnessRepository) Latest(ctx context.Context, patientID string) (*domain.WellnessRecord, error) {
	records, _ := r.ListByPatient(ctx, patientID, 1)
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}
