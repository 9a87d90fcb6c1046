package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/prohmpiriya/healthcare-portal/internal/domain"
)

// WellnessCollection is the collection holding wellness records
const WellnessCollection = "wellness_records"

type bloodPressureDocument struct {
	Systolic  int `bson:"systolic"`
	Diastolic int `bson:"diastolic"`
}

type wellnessDocument struct {
	ID             bson.ObjectID          `bson:"_id,omitempty"`
	PatientID      string                 `bson:"patient_id"`
	Steps          *int                   `bson:"steps,omitempty"`
	HeartRate      *int                   `bson:"heart_rate,omitempty"`
	BloodPressure  *bloodPressureDocument `bson:"blood_pressure,omitempty"`
	Weight         *float64               `bson:"weight,omitempty"`
	Height         *float64               `bson:"height,omitempty"`
	CaloriesBurned *int                   `bson:"calories_burned,omitempty"`
	SleepHours     *float64               `bson:"sleep_hours,omitempty"`
	Notes          string                 `bson:"notes,omitempty"`
	RecordedAt     time.Time              `bson:"recorded_at"`
	CreatedAt      time.Time              `bson:"created_at"`
}

// MongoWellnessRepository implements WellnessRepository using MongoDB
type MongoWellnessRepository struct {
	collection *mongo.Collection
}

// NewMongoWellnessRepository creates a new MongoWellnessRepository
func NewMongoWellnessRepository(db *mongo.Database) *MongoWellnessRepository {
	return &MongoWellnessRepository{collection: db.Collection(WellnessCollection)}
}

// EnsureIndexes creates the per-patient timeline index
func (r *MongoWellnessRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "patient_id", Value: 1},
			{Key: "recorded_at", Value: -1},
		},
	})
	return mapMongoError(err)
}

// Create inserts a record and sets its ID
func (r *MongoWellnessRepository) Create(ctx context.Context, record *domain.WellnessRecord) error {
	doc := toWellnessDocument(record)
	doc.ID = bson.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return mapMongoError(err)
	}
	record.ID = doc.ID.Hex()
	return nil
}

// ListByPatient lists a patient's records, newest first
func (r *MongoWellnessRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*domain.WellnessRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.D{{Key: "patient_id", Value: patientID}}, opts)
	if err != nil {
		return nil, mapMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []wellnessDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapMongoError(err)
	}

	records := make([]*domain.WellnessRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toDomain())
	}
	return records, nil
}

// Latest returns the most recent record of a patient
func (r *MongoWellnessRepository) Latest(ctx context.Context, patientID string) (*domain.WellnessRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "recorded_at", Value: -1}, {Key: "_id", Value: -1}})

	var doc wellnessDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "patient_id", Value: patientID}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mapMongoError(err)
	}
	return doc.toDomain(), nil
}

func toWellnessDocument(w *domain.WellnessRecord) *wellnessDocument {
	doc := &wellnessDocument{
		PatientID:      w.PatientID,
		Steps:          w.Steps,
		HeartRate:      w.HeartRate,
		Weight:         w.Weight,
		Height:         w.Height,
		CaloriesBurned: w.CaloriesBurned,
		SleepHours:     w.SleepHours,
		Notes:          w.Notes,
		RecordedAt:     w.RecordedAt.UTC(),
		CreatedAt:      w.CreatedAt.UTC(),
	}
	if w.BloodPressure != nil {
		doc.BloodPressure = &bloodPressureDocument{
			Systolic:  w.BloodPressure.Systolic,
			Diastolic: w.BloodPressure.Diastolic,
		}
	}
	return doc
}

func (d *wellnessDocument) toDomain() *domain.WellnessRecord {
	record := &domain.WellnessRecord{
		ID:             d.ID.Hex(),
		PatientID:      d.PatientID,
		Steps:          d.Steps,
		HeartRate:      d.HeartRate,
		Weight:         d.Weight,
		Height:         d.Height,
		CaloriesBurned: d.CaloriesBurned,
		SleepHours:     d.SleepHours,
		Notes:          d.Notes,
		RecordedAt:     d.RecordedAt,
		CreatedAt:      d.CreatedAt,
	}
	if d.BloodPressure != nil {
		record.BloodPressure = &domain.BloodPressure{
			Systolic:  d.BloodPressure.Systolic,
			Diastolic: d.BloodPressure.Diastolic,
		}
	}
	return record
}
