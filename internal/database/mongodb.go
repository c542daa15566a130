package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoDB wraps the client and the application database handle
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	logger   *zap.Logger
}

// Connect opens a MongoDB connection, pings it, and ensures indexes
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration, logger *zap.Logger) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
		logger:   logger,
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", dbName))

	return db, nil
}

// Disconnect closes the underlying client
func (m *MongoDB) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// Ping checks connectivity for health endpoints
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

// Collection helpers

func (m *MongoDB) Users() *mongo.Collection {
	return m.Database.Collection("users")
}

func (m *MongoDB) ExerciseLogs() *mongo.Collection {
	return m.Database.Collection("exercise_logs")
}

func (m *MongoDB) MedicationReminders() *mongo.Collection {
	return m.Database.Collection("medication_reminders")
}

func (m *MongoDB) JournalEntries() *mongo.Collection {
	return m.Database.Collection("journal_entries")
}

func (m *MongoDB) Appointments() *mongo.Collection {
	return m.Database.Collection("appointments")
}

func (m *MongoDB) ChatMessages() *mongo.Collection {
	return m.Database.Collection("chat_messages")
}

func (m *MongoDB) Reports() *mongo.Collection {
	return m.Database.Collection("reports")
}

// ensureIndexes creates the indexes the query paths rely on. Every patient
// data collection is filtered by patientId plus a time window.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		m.Users(): {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "active", Value: 1}}},
		},
		m.ExerciseLogs(): {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "occurredAt", Value: -1}}},
		},
		m.MedicationReminders(): {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "occurredAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "occurredAt", Value: 1}}},
		},
		m.JournalEntries(): {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "occurredAt", Value: -1}}},
		},
		m.Appointments(): {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "scheduledAt", Value: -1}}},
			{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "scheduledAt", Value: -1}}},
		},
		m.ChatMessages(): {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "occurredAt", Value: 1}}},
		},
		m.Reports(): {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "generatedOn", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
	}

	return nil
}
