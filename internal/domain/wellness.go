package domain

import "time"

// BloodPressure in mmHg
type BloodPressure struct {
	Systolic  int
	Diastolic int
}

// WellnessRecord is a patient's self-reported health metrics. Unset metrics are nil.
type WellnessRecord struct {
	ID             string
	PatientID      string
	Steps          *int
	HeartRate      *int
	BloodPressure  *BloodPressure
	Weight         *float64
	Height         *float64
	CaloriesBurned *int
	SleepHours     *float64
	Notes          string
	RecordedAt     time.Time
	CreatedAt      time.Time
}
