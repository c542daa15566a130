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

// AppointmentCategory selects a slice of a patient's appointment history
type AppointmentCategory string

const (
	AppointmentUpcoming  AppointmentCategory = "upcoming"
	AppointmentPast      AppointmentCategory = "past"
	AppointmentCancelled AppointmentCategory = "cancelled"
)

// Valid reports whether the category is one of the known values
func (c AppointmentCategory) Valid() bool {
	switch c {
	case AppointmentUpcoming, AppointmentPast, AppointmentCancelled:
		return true
	}
	return false
}

// AppointmentRepository manages appointment documents
type AppointmentRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewAppointmentRepository creates a new AppointmentRepository
func NewAppointmentRepository(db *mongo.Database, logger *zap.Logger) *AppointmentRepository {
	return &AppointmentRepository{
		collection: db.Collection("appointments"),
		logger:     logger,
	}
}

// Create inserts a new appointment
func (r *AppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	if _, err := r.collection.InsertOne(ctx, appt); err != nil {
		r.logger.Error("failed to create appointment",
			zap.Error(err),
			zap.String("patient_id", appt.PatientID),
		)
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// FindByPatientID retrieves a patient's appointments in one category.
// Upcoming appointments sort soonest first, past and cancelled newest first.
func (r *AppointmentRepository) FindByPatientID(ctx context.Context, patientID string, category AppointmentCategory, now time.Time) ([]model.Appointment, error) {
	filter := bson.M{"patientId": patientID}
	opts := findNewestFirst("scheduledAt")

	switch category {
	case AppointmentUpcoming:
		filter["status"] = model.AppointmentScheduled
		filter["scheduledAt"] = bson.M{"$gte": now}
		opts = findOldestFirst("scheduledAt")
	case AppointmentPast:
		filter["status"] = bson.M{"$ne": model.AppointmentCancelled}
		filter["scheduledAt"] = bson.M{"$lt": now}
	case AppointmentCancelled:
		filter["status"] = model.AppointmentCancelled
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("failed to find appointments",
			zap.Error(err),
			zap.String("patient_id", patientID),
			zap.String("category", string(category)),
		)
		return nil, fmt.Errorf("failed to find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []model.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// FindByProviderID retrieves every appointment booked with a provider, soonest first
func (r *AppointmentRepository) FindByProviderID(ctx context.Context, providerID string) ([]model.Appointment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"providerId": providerID}, findOldestFirst("scheduledAt"))
	if err != nil {
		r.logger.Error("failed to find provider appointments", zap.Error(err), zap.String("provider_id", providerID))
		return nil, fmt.Errorf("failed to find provider appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []model.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}

// FindByID retrieves a single appointment
func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}
	return &appt, nil
}

// UpdateStatus changes the status of an appointment
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		r.logger.Error("failed to update appointment status",
			zap.Error(err),
			zap.String("appointment_id", id),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reschedule moves an appointment to a new time and restores scheduled status
func (r *AppointmentRepository) Reschedule(ctx context.Context, id string, scheduledAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"scheduledAt": scheduledAt,
		"status":      model.AppointmentScheduled,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		r.logger.Error("failed to reschedule appointment", zap.Error(err), zap.String("appointment_id", id))
		return fmt.Errorf("failed to reschedule appointment: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
