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

// ChatRepository manages patient chat transcripts
type ChatRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *mongo.Database, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{
		collection: db.Collection("chat_messages"),
		logger:     logger,
	}
}

// Insert appends a message to a patient's transcript
func (r *ChatRepository) Insert(ctx context.Context, msg *model.ChatMessage) error {
	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		r.logger.Error("failed to insert chat message",
			zap.Error(err),
			zap.String("patient_id", msg.PatientID),
		)
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// FindByPatientID retrieves a patient's full transcript, oldest first
func (r *ChatRepository) FindByPatientID(ctx context.Context, patientID string) ([]model.ChatMessage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, findOldestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find chat messages", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to find chat messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []model.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return messages, nil
}

// FindByPatientIDSince retrieves a patient's messages after the cutoff, oldest first
func (r *ChatRepository) FindByPatientIDSince(ctx context.Context, patientID string, since time.Time) ([]model.ChatMessage, error) {
	filter := bson.M{
		"patientId":  patientID,
		"occurredAt": bson.M{"$gt": since},
	}

	cursor, err := r.collection.Find(ctx, filter, findOldestFirst("occurredAt"))
	if err != nil {
		r.logger.Error("failed to find chat messages in window",
			zap.Error(err),
			zap.String("patient_id", patientID),
			zap.Time("since", since),
		)
		return nil, fmt.Errorf("failed to find chat messages in window: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []model.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return messages, nil
}

// FindRecent retrieves the last limit messages of a transcript, oldest first
func (r *ChatRepository) FindRecent(ctx context.Context, patientID string, limit int64) ([]model.ChatMessage, error) {
	opts := findNewestFirst("occurredAt").SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		r.logger.Error("failed to find recent chat messages", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to find recent chat messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []model.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}

	// reverse back into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
