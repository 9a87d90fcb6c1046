package dto

import (
	"time"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// BloodPressureRequest carries both readings or neither
type BloodPressureRequest struct {
	Systolic  *int `json:"systolic"`
	Diastolic *int `json:"diastolic"`
}

// CreateWellnessRequest represents a wellness entry recorded by a patient
type CreateWellnessRequest struct {
	Steps          *int                  `json:"steps,omitempty"`
	HeartRate      *int                  `json:"heartRate,omitempty"`
	BloodPressure  *BloodPressureRequest `json:"bloodPressure,omitempty"`
	Weight         *float64              `json:"weight,omitempty"`
	Height         *float64              `json:"height,omitempty"`
	CaloriesBurned *int                  `json:"caloriesBurned,omitempty"`
	SleepHours     *float64              `json:"sleepHours,omitempty"`
	Notes          string                `json:"notes,omitempty" binding:"max=2000"`
	RecordedAt     *time.Time            `json:"recordedAt,omitempty"`
}

// Validate validates the CreateWellnessRequest
func (r *CreateWellnessRequest) Validate() (bool, string) {
	for _, v := range []*int{r.Steps, r.HeartRate, r.CaloriesBurned} {
		if v != nil && *v < 0 {
			return false, "Wellness values cannot be negative"
		}
	}
	for _, v := range []*float64{r.Weight, r.Height, r.SleepHours} {
		if v != nil && *v < 0 {
			return false, "Wellness values cannot be negative"
		}
	}
	if r.SleepHours != nil && *r.SleepHours > 24 {
		return false, "Sleep hours cannot exceed 24"
	}
	if bp := r.BloodPressure; bp != nil {
		if (bp.Systolic == nil) != (bp.Diastolic == nil) {
			return false, "Blood pressure needs both systolic and diastolic"
		}
		if bp.Systolic != nil && (*bp.Systolic < 0 || *bp.Diastolic < 0) {
			return false, "Wellness values cannot be negative"
		}
	}
	return true, ""
}

// ToDomain builds a record owned by patientID; RecordedAt defaults to now
func (r *CreateWellnessRequest) ToDomain(patientID string, now time.Time) *domain.WellnessRecord {
	record := &domain.WellnessRecord{
		PatientID:      patientID,
		Steps:          r.Steps,
		HeartRate:      r.HeartRate,
		Weight:         r.Weight,
		Height:         r.Height,
		CaloriesBurned: r.CaloriesBurned,
		SleepHours:     r.SleepHours,
		Notes:          r.Notes,
		RecordedAt:     now,
		CreatedAt:      now,
	}
	if r.RecordedAt != nil && !r.RecordedAt.IsZero() {
		record.RecordedAt = *r.RecordedAt
	}
	if bp := r.BloodPressure; bp != nil && bp.Systolic != nil && bp.Diastolic != nil {
		record.BloodPressure = &domain.BloodPressure{Systolic: *bp.Systolic, Diastolic: *bp.Diastolic}
	}
	return record
}

// BloodPressureResponse in mmHg
type BloodPressureResponse struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// WellnessResponse represents a wellness record in API response
type WellnessResponse struct {
	ID             string                 `json:"id"`
	PatientID      string                 `json:"patientId"`
	Steps          *int                   `json:"steps,omitempty"`
	HeartRate      *int                   `json:"heartRate,omitempty"`
	BloodPressure  *BloodPressureResponse `json:"bloodPressure,omitempty"`
	Weight         *float64               `json:"weight,omitempty"`
	Height         *float64               `json:"height,omitempty"`
	CaloriesBurned *int                   `json:"caloriesBurned,omitempty"`
	SleepHours     *float64               `json:"sleepHours,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	RecordedAt     time.Time              `json:"recordedAt"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// WellnessFromDomain converts a wellness record to its response
func WellnessFromDomain(w *domain.WellnessRecord) *WellnessResponse {
	resp := &WellnessResponse{
		ID:             w.ID,
		PatientID:      w.PatientID,
		Steps:          w.Steps,
		HeartRate:      w.HeartRate,
		Weight:         w.Weight,
		Height:         w.Height,
		CaloriesBurned: w.CaloriesBurned,
		SleepHours:     w.SleepHours,
		Notes:          w.Notes,
		RecordedAt:     w.RecordedAt,
		CreatedAt:      w.CreatedAt,
	}
	if w.BloodPressure != nil {
		resp.BloodPressure = &BloodPressureResponse{
			Systolic:  w.BloodPressure.Systolic,
			Diastolic: w.BloodPressure.Diastolic,
		}
	}
	return resp
}

// WellnessListFromDomain converts a list of wellness records
func WellnessListFromDomain(items []*domain.WellnessRecord) []*WellnessResponse {
	result := make([]*WellnessResponse, 0, len(items))
	for _, w := range items {
		result = append(result, WellnessFromDomain(w))
	}
	return result
}
