package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prohmpiriya/healthcare-portal/internal/access"
	"github.com/prohmpiriya/healthcare-portal/internal/domain"
	"github.com/prohmpiriya/healthcare-portal/internal/dto"
	"github.com/prohmpiriya/healthcare-portal/pkg/middleware"
	"github.com/prohmpiriya/healthcare-portal/pkg/token"
)

const (
	testPatientID  = "7c0e3a52-52a4-4d35-9d77-62f7b6a6f001"
	testProviderID = "7c0e3a52-52a4-4d35-9d77-62f7b6a6f002"
)

type testEnv struct {
	router        *gin.Engine
	tokens        *token.Manager
	auth          *MockAuthService
	users         *MockUserService
	appointments  *MockAppointmentService
	prescriptions *MockPrescriptionService
	wellness      *MockWellnessService
	checks        map[string]HealthCheck
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Count int `json:"count"`
	} `json:"meta"`
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewManager("handler-test-secret", time.Hour, "healthcare-portal")
	require.NoError(t, err)

	env := &testEnv{
		tokens:        tokens,
		auth:          &MockAuthService{},
		users:         &MockUserService{},
		appointments:  &MockAppointmentService{},
		prescriptions: &MockPrescriptionService{},
		wellness:      &MockWellnessService{},
		checks:        map[string]HealthCheck{},
	}

	r := gin.New()
	RegisterRoutes(r, &Handlers{
		Health:       NewHealthHandler("healthcare-portal", env.checks),
		Auth:         NewAuthHandler(env.auth),
		User:         NewUserHandler(env.users),
		Appointment:  NewAppointmentHandler(env.appointments),
		Prescription: NewPrescriptionHandler(env.prescriptions),
		Wellness:     NewWellnessHandler(env.wellness),
	}, RouteConfig{
		Guard: middleware.JWTMiddleware(&middleware.JWTConfig{Verifier: tokens}),
	})
	env.router = r
	return env
}

func (e *testEnv) bearer(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	raw, _, err := e.tokens.Issue(userID, string(role)+"@healthcare.com", string(role))
	require.NoError(t, err)
	return "Bearer " + raw
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp envelope
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHealth(t *testing.T) {
	env := setupRouter(t)

	w, _ := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestReady(t *testing.T) {
	env := setupRouter(t)
	env.checks["postgres"] = func(ctx context.Context) error { return nil }

	w, _ := env.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	env.checks["mongodb"] = func(ctx context.Context) error { return errors.New("no reachable servers") }
	w, _ = env.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "no reachable servers")
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: "patient"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate email",
			body:       dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: "patient"},
			err:        domain.ErrEmailTaken,
			wantStatus: http.StatusConflict,
			wantCode:   "USER_EXISTS",
		},
		{
			name:       "validation message surfaces",
			body:       dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "abc", Role: "patient"},
			err:        domain.NewValidationError("Password must be at least 6 characters"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "storage unavailable",
			body:       dto.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1", Role: "patient"},
			err:        domain.ErrUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "SERVICE_UNAVAILABLE",
		},
		{
			name:       "malformed body",
			body:       "not-an-object",
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupRouter(t)
			env.auth.RegisterFunc = func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &dto.AuthResponse{
					Token: "issued",
					User:  &dto.UserResponse{ID: testPatientID, Name: req.Name, Email: req.Email, Role: req.Role},
				}, nil
			}

			w, resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}
			assert.True(t, resp.Success)
			assert.NotContains(t, w.Body.String(), "password")
		})
	}
}

func TestAuthHandler_Register_ValidationMessage(t *testing.T) {
	env := setupRouter(t)
	env.auth.RegisterFunc = func(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
		return nil, domain.NewValidationError("Invalid email format")
	}

	_, resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{Email: "nope"})
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid email format", resp.Error.Message)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupRouter(t)
	env.auth.LoginFunc = func(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
		if req.Password != "secret1" {
			return nil, domain.ErrInvalidCredentials
		}
		return &dto.AuthResponse{Token: "issued", User: &dto.UserResponse{ID: testPatientID, Email: req.Email}}, nil
	}

	w, resp := env.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "jane@example.com", Password: "secret1", Role: "patient"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	w, resp = env.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "jane@example.com", Password: "wrong", Role: "patient"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	assert.Equal(t, "Invalid email or password", resp.Error.Message)
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupRouter(t)
	env.auth.GetUserFunc = func(ctx context.Context, id string) (*domain.User, error) {
		if id != testPatientID {
			return nil, domain.ErrUserNotFound
		}
		u, err := domain.NewUser("Jane", "jane@example.com", "digest", domain.RolePatient)
		require.NoError(t, err)
		u.ID = id
		return u, nil
	}

	for _, path := range []string{"/api/v1/auth/me", "/api/v1/auth/verify"} {
		w, resp := env.do(t, http.MethodGet, path, env.bearer(t, testPatientID, domain.RolePatient), nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, string(resp.Data), testPatientID)
		assert.NotContains(t, string(resp.Data), "digest")
	}

	w, _ := env.do(t, http.MethodGet, "/api/v1/auth/me", env.bearer(t, testProviderID, domain.RoleProvider), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuard_RejectsMissingAndBadTokens(t *testing.T) {
	env := setupRouter(t)

	tests := []struct {
		name     string
		auth     string
		wantCode string
	}{
		{name: "missing header", auth: "", wantCode: "MISSING_TOKEN"},
		{name: "not bearer", auth: "Basic abc", wantCode: "INVALID_TOKEN"},
		{name: "garbage token", auth: "Bearer not.a.jwt", wantCode: "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := env.do(t, http.MethodGet, "/api/v1/appointments", tt.auth, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestGuard_ExpiredToken(t *testing.T) {
	env := setupRouter(t)
	raw, _, err := env.tokens.IssueWithTTL(testPatientID, "jane@example.com", "patient", -time.Minute)
	require.NoError(t, err)

	w, resp := env.do(t, http.MethodGet, "/api/v1/users/profile", "Bearer "+raw, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TOKEN_EXPIRED", resp.Error.Code)
}

func TestUserHandler_ListDoctorsIsPublic(t *testing.T) {
	env := setupRouter(t)
	env.users.ListDoctorsFunc = func(ctx context.Context) ([]*domain.User, error) {
		u, err := domain.NewUser("Dr Rishi Cheekatla", "rishi@healthcare.com", "digest", domain.RoleProvider)
		require.NoError(t, err)
		return []*domain.User{u}, nil
	}

	w, resp := env.do(t, http.MethodGet, "/api/v1/doctors", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Count)
	assert.NotContains(t, w.Body.String(), "digest")
}

func TestUserHandler_ListPatientsProviderOnly(t *testing.T) {
	env := setupRouter(t)
	called := false
	env.users.ListPatientsFunc = func(ctx context.Context, p access.Principal) ([]*domain.User, error) {
		called = true
		return []*domain.User{}, nil
	}

	w, _ := env.do(t, http.MethodGet, "/api/v1/patients", env.bearer(t, testPatientID, domain.RolePatient), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)

	w, _ = env.do(t, http.MethodGet, "/api/v1/patients", env.bearer(t, testProviderID, domain.RoleProvider), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	env := setupRouter(t)
	env.users.UpdateProfileFunc = func(ctx context.Context, p access.Principal, req *dto.UpdateProfileRequest) (*domain.User, error) {
		assert.Equal(t, testPatientID, p.ID)
		u, err := domain.NewUser("Jane", "jane@example.com", "digest", domain.RolePatient)
		require.NoError(t, err)
		u.ID = p.ID
		req.ToDomain().Apply(u)
		return u, nil
	}

	phone := "555-0100"
	w, resp := env.do(t, http.MethodPut, "/api/v1/users/profile", env.bearer(t, testPatientID, domain.RolePatient), dto.UpdateProfileRequest{Phone: &phone})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "555-0100")
}

func TestAppointmentHandler_Lifecycle(t *testing.T) {
	env := setupRouter(t)
	auth := env.bearer(t, testPatientID, domain.RolePatient)

	env.appointments.CreateFunc = func(ctx context.Context, p access.Principal, req *dto.CreateAppointmentRequest) (*domain.Appointment, error) {
		a := domain.NewAppointment(p.ID, req.DoctorID, req.Name, req.Email, req.Phone, req.Department, req.Date, req.Message)
		a.ID = "appt-1"
		return a, nil
	}
	env.appointments.GetFunc = func(ctx context.Context, p access.Principal, id string) (*domain.Appointment, error) {
		if id == "someone-elses" {
			return nil, domain.ErrForbidden
		}
		return nil, domain.ErrAppointmentNotFound
	}
	env.appointments.CancelFunc = func(ctx context.Context, p access.Principal, id string) error {
		return nil
	}

	w, resp := env.do(t, http.MethodPost, "/api/v1/appointments", auth, dto.CreateAppointmentRequest{
		DoctorID:   testProviderID,
		Name:       "Jane",
		Email:      "jane@example.com",
		Department: "Cardiology",
		Date:       "2026-11-02",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(resp.Data), "appt-1")

	w, _ = env.do(t, http.MethodGet, "/api/v1/appointments/someone-elses", auth, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/v1/appointments/missing", auth, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = env.do(t, http.MethodDelete, "/api/v1/appointments/appt-1", auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), "appt-1")
}

func TestAppointmentHandler_ListIncludesParties(t *testing.T) {
	env := setupRouter(t)
	env.appointments.ListFunc = func(ctx context.Context, p access.Principal) ([]*domain.Appointment, error) {
		a := domain.NewAppointment(p.ID, testProviderID, "Jane", "jane@example.com", "555", "Cardiology", "2026-11-02", "")
		a.UserName, a.UserEmail = "Jane Patient", "jane@example.com"
		a.DoctorName, a.DoctorEmail = "Dr Rishi", "rishi@healthcare.com"
		return []*domain.Appointment{a}, nil
	}

	w, resp := env.do(t, http.MethodGet, "/api/v1/appointments", env.bearer(t, testPatientID, domain.RolePatient), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []dto.AppointmentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, dto.PartyResponse{ID: testPatientID, Name: "Jane Patient", Email: "jane@example.com"}, items[0].User)
	assert.Equal(t, dto.PartyResponse{ID: testProviderID, Name: "Dr Rishi", Email: "rishi@healthcare.com"}, items[0].Doctor)
}

func TestPrescriptionHandler_CreateProviderOnly(t *testing.T) {
	env := setupRouter(t)
	env.prescriptions.CreateFunc = func(ctx context.Context, p access.Principal, req *dto.CreatePrescriptionRequest) (*domain.PrescriptionView, error) {
		if req.PatientID == "unknown" {
			return nil, domain.ErrPatientNotFound
		}
		rx := domain.NewPrescription(req.PatientID, p.ID, req.MedicinesToDomain(), req.Diagnosis, req.Notes)
		return &domain.PrescriptionView{Prescription: *rx}, nil
	}

	body := dto.CreatePrescriptionRequest{
		PatientID: testPatientID,
		Medicines: []dto.MedicineRequest{{Name: "Amlodipine", Tablets: 1, FrequencyPerDay: 1, DurationDays: 30}},
		Diagnosis: "Hypertension",
	}

	w, _ := env.do(t, http.MethodPost, "/api/v1/prescriptions", env.bearer(t, testPatientID, domain.RolePatient), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, http.MethodPost, "/api/v1/prescriptions", env.bearer(t, testProviderID, domain.RoleProvider), body)
	assert.Equal(t, http.StatusCreated, w.Code)

	body.PatientID = "unknown"
	w, resp := env.do(t, http.MethodPost, "/api/v1/prescriptions", env.bearer(t, testProviderID, domain.RoleProvider), body)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestWellnessHandler_ProviderCannotWrite(t *testing.T) {
	env := setupRouter(t)
	called := false
	env.wellness.RecordFunc = func(ctx context.Context, p access.Principal, patientID string, req *dto.CreateWellnessRequest) (*domain.WellnessRecord, error) {
		called = true
		return req.ToDomain(patientID, time.Now()), nil
	}

	steps := 8000
	body := dto.CreateWellnessRequest{Steps: &steps}

	w, _ := env.do(t, http.MethodPost, "/api/v1/wellness/my-wellness", env.bearer(t, testProviderID, domain.RoleProvider), body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)

	w, resp := env.do(t, http.MethodPost, "/api/v1/wellness/my-wellness", env.bearer(t, testPatientID, domain.RolePatient), body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, called)
	assert.Contains(t, string(resp.Data), testPatientID)
}

func TestWellnessHandler_Reads(t *testing.T) {
	env := setupRouter(t)
	var seen []string
	env.wellness.ListFunc = func(ctx context.Context, p access.Principal, patientID string) ([]*domain.WellnessRecord, error) {
		seen = append(seen, patientID)
		return []*domain.WellnessRecord{{ID: "w1", PatientID: patientID}}, nil
	}
	env.wellness.LatestFunc = func(ctx context.Context, p access.Principal, patientID string) (*domain.WellnessRecord, error) {
		return nil, domain.ErrWellnessNotFound
	}

	w, resp := env.do(t, http.MethodGet, "/api/v1/wellness/my-wellness", env.bearer(t, testPatientID, domain.RolePatient), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Count)

	w, _ = env.do(t, http.MethodGet, "/api/v1/wellness/patient/"+testPatientID, env.bearer(t, testProviderID, domain.RoleProvider), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{testPatientID, testPatientID}, seen)

	w, _ = env.do(t, http.MethodGet, "/api/v1/wellness/patient/"+testPatientID, env.bearer(t, testPatientID, domain.RolePatient), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/v1/wellness/my-wellness/latest", env.bearer(t, testPatientID, domain.RolePatient), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondError_InternalIsHidden(t *testing.T) {
	env := setupRouter(t)
	env.appointments.ListFunc = func(ctx context.Context, p access.Principal) ([]*domain.Appointment, error) {
		return nil, errors.New("pq: relation does not exist")
	}

	w, resp := env.do(t, http.MethodGet, "/api/v1/appointments", env.bearer(t, testPatientID, domain.RolePatient), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Internal server error", resp.Error.Message)
	assert.NotContains(t, w.Body.String(), "relation")
}
