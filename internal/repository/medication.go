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

// MedicationRepository manages scheduled medication dose documents
type MedicationRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMedicationRepository creates a new MedicationRepository
func NewMedicationRepository(db *mongo.Database, logger *zap.Logger) *MedicationRepository {
	return &MedicationRepository{
		collection: db.Collection("medication_reminders"),
		logger:     logger,
	}
}

// Create inserts a new medication reminder
func (r *MedicationRepository) Create(ctx context.Context, reminder *model.MedicationReminder) error {
	if _, err := r.collection.InsertOne(ctx, reminder); err != nil {
		r.logger.Error("failed to create medication reminder",
			zap.Error(err),
			zap.String("patient_id", reminder.PatientID),
			zap.String("medication", reminder.MedicationName),
		)
		return fmt.Errorf("failed to create medication reminder: %w", err)
	}
	return nil
}

// FindByPatientID retrieves a patient's dose schedule, newest first
func (r *MedicationRepository) FindByPatientID(ctx context.Context, patientID string) ([]model.MedicationReminder, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, findNewestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find medication reminders", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to find medication reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []model.MedicationReminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode medication reminders: %w", err)
	}
	return reminders, nil
}

// FindByPatientIDSince retrieves a patient's dose events after the cutoff,
// oldest first
func (r *MedicationRepository) FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.MedicationReminder, error) {
	filter := bson.M{
		"patientId":  patientID,
		"occurredAt": bson.M{"$gt": since},
	}

	cursor, err := r.collection.Find(ctx, filter, findOldestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find medication reminders in window",
			zap.Error(err),
			zap.String("patient_id", patientID),
			zap.Time("since", since),
		)
		return nil, fmt.Errorf("failed to find medication reminders in window: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []model.MedicationReminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode medication reminders: %w", err)
	}
	return reminders, nil
}

// UpdateStatus sets the dose status on a reminder
func (r *MedicationRepository) UpdateStatus(ctx context.Context, id string, status model.DoseStatus) error {
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("failed to update dose status", zap.Error(err), zap.String("reminder_id", id))
		return fmt.Errorf("failed to update dose status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID retrieves a single medication reminder
func (r *MedicationRepository) FindByID(ctx context.Context, id string) (*model.MedicationReminder, error) {
	var reminder model.MedicationReminder
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to find medication reminder", zap.Error(err), zap.String("reminder_id", id))
		return nil, fmt.Errorf("failed to find medication reminder: %w", err)
	}
	return &reminder, nil
}

// MarkStalePendingMissed flips every dose still Pending before the cutoff to
// Missed and returns how many documents changed
func (r *MedicationRepository) MarkStalePendingMissed(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":     model.DosePending,
		"occurredAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": model.DoseMissed}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		r.logger.Error("failed to mark stale doses missed", zap.Error(err), zap.Time("cutoff", cutoff))
		return 0, fmt.Errorf("failed to mark stale doses missed: %w", err)
	}
	return result.ModifiedCount, nil
}
