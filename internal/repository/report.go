package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// ReportRepository manages generated patient reports
type ReportRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *mongo.Database, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		collection: db.Collection("reports"),
		logger:     logger,
	}
}

// Save persists a generated report
func (r *ReportRepository) Save(ctx context.Context, report *model.PatientReport) error {
	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		r.logger.Error("failed to save report",
			zap.Error(err),
			zap.String("patient_id", report.PatientID),
		)
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// FindByID retrieves a single report
func (r *ReportRepository) FindByID(ctx context.Context, id string) (*model.PatientReport, error) {
	var report model.PatientReport
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

// FindByPatientID retrieves a patient's report history, newest first
func (r *ReportRepository) FindByPatientID(ctx context.Context, patientID string) ([]model.PatientReport, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientID}, findNewestFirst("generatedOn"))
	if err != nil {
		r.logger.Error("failed to find reports", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("failed to find reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []model.PatientReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}
