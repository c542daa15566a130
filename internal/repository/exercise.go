package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// ExerciseRepository manages exercise log documents
type ExerciseRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewExerciseRepository creates a new ExerciseRepository
func NewExerciseRepository(db *mongo.Database, logger *zap.Logger) *ExerciseRepository {
	return &ExerciseRepository{
		collection: db.Collection("exercise_logs"),
		logger:     logger,
	}
}

// Create inserts a new exercise log
func (r *ExerciseRepository) Create(ctx context.Context, log *model.ExerciseLog) error {
	if _, err := r.collection.InsertOne(ctx, log); err != nil {
		r.logger.Error("failed to create exercise log",
			zap.Error(err),
			zap.String("patient_id", log.PatientID),
		)
		return fmt.Errorf("failed to create exercise log: %w", err)
	}
	return nil
}

// FindByPatientID retrieves a patient's exercise history, newest first
func (r *ExerciseRepository) FindByPatientID(ctx context.Context, patientID string) ([]model.ExerciseLog, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, findNewestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find exercise logs", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to find exercise logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []model.ExerciseLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode exercise logs: %w", err)
	}
	return logs, nil
}

// FindByPatientIDSince retrieves a patient's exercise logs after the cutoff,
// oldest first
func (r *ExerciseRepository) FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.ExerciseLog, error) {
	filter := bson.M{
		"patientId":  patientID,
		"occurredAt": bson.M{"$gt": since},
	}

	cursor, err := r.collection.Find(ctx, filter, findOldestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find exercise logs in window",
			zap.Error(err),
			zap.String("patient_id", patientID),
			zap.Time("since", since),
		)
		return nil, fmt.Errorf("failed to find exercise logs in window: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []model.ExerciseLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode exercise logs: %w", err)
	}
	return logs, nil
}

// Update modifies the editable fields of an exercise log
func (r *ExerciseRepository) Update(ctx context.Context, id string, exerciseType string, duration int, intensity model.Intensity) error {
	update := bson.M{"$set": bson.M{
		"exerciseType":    exerciseType,
		"durationMinutes": duration,
		"intensity":       intensity,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("failed to update exercise log", zap.Error(err), zap.String("log_id", id))
		return fmt.Errorf("failed to update exercise log: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an exercise log
func (r *ExerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("failed to delete exercise log", zap.Error(err), zap.String("log_id", id))
		return fmt.Errorf("failed to delete exercise log: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindOwner returns the patient id that owns an exercise log
func (r *ExerciseRepository) FindOwner(ctx context.Context, id string) (string, error) {
	var log model.ExerciseLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to find exercise log: %w", err)
	}
	return log.PatientID, nil
}
