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

// JournalRepository manages journal entry documents
type JournalRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *mongo.Database, logger *zap.Logger) *JournalRepository {
	return &JournalRepository{
		collection: db.Collection("journal_entries"),
		logger:     logger,
	}
}

// Create inserts a new journal entry
func (r *JournalRepository) Create(ctx context.Context, entry *model.JournalEntry) error {
	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		r.logger.Error("failed to create journal entry",
			zap.Error(err),
			zap.String("patient_id", entry.PatientID),
		)
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// FindByPatientID retrieves a patient's journal history, newest first
func (r *JournalRepository) FindByPatientID(ctx context.Context, patientID string) ([]model.JournalEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, findNewestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find journal entries", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to find journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []model.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}
	return entries, nil
}

// FindByPatientIDSince retrieves a patient's journal entries after the cutoff,
// oldest first
func (r *JournalRepository) FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.JournalEntry, error) {
	filter := bson.M{
		"patientId":  patientID,
		"occurredAt": bson.M{"$gt": since},
	}

	cursor, err := r.collection.Find(ctx, filter, findOldestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find journal entries in window",
			zap.Error(err),
			zap.String("patient_id", patientID),
			zap.Time("since", since),
		)
		return nil, fmt.Errorf("failed to find journal entries in window: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []model.JournalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}
	return entries, nil
}

// Update modifies the editable fields of a journal entry
func (r *JournalRepository) Update(ctx context.Context, id string, mood model.Mood, symptoms, dietNotes *string, notes string) error {
	update := bson.M{"$set": bson.M{
		"mood":      mood,
		"symptoms":  symptoms,
		"dietNotes": dietNotes,
		"notes":     notes,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("failed to update journal entry", zap.Error(err), zap.String("entry_id", id))
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a journal entry
func (r *JournalRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("failed to delete journal entry", zap.Error(err), zap.String("entry_id", id))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindOwner returns the patient id that owns a journal entry
func (r *JournalRepository) FindOwner(ctx context.Context, id string) (string, error) {
	var entry model.JournalEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to find journal entry: %w", err)
	}
	return entry.PatientID, nil
}
