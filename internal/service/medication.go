package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// medicationStore is the persistence the medication service depends on
type medicationStore interface {
	Create(ctx context.Context, reminder *model.MedicationReminder) error
	FindByPatientID(ctx context.Context, patientID string) ([]model.MedicationReminder, error)
	FindByID(ctx context.Context, id string) (*model.MedicationReminder, error)
	UpdateStatus(ctx context.Context, id string, status model.DoseStatus) error
}

// MedicationInput carries the fields of a prescription request
type MedicationInput struct {
	MedicationName string
	Dosage         string
	Frequency      string
	TimeOfDay      string
	OccurredAt     *time.Time
}

// MedicationService manages medication reminders and dose tracking
type MedicationService struct {
	store  medicationStore
	logger *zap.Logger
}

// NewMedicationService creates a new MedicationService
func NewMedicationService(store medicationStore, logger *zap.Logger) *MedicationService {
	return &MedicationService{store: store, logger: logger}
}

// Prescribe schedules a new medication dose for a patient.
// New doses start in the pending state.
func (s *MedicationService) Prescribe(ctx context.Context, patientID string, input MedicationInput) (*model.MedicationReminder, error) {
	if input.MedicationName == "" {
		return nil, validationErrorf("medication name is required")
	}
	if input.Dosage == "" {
		return nil, validationErrorf("dosage is required")
	}

	occurredAt := time.Now()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	reminder := &model.MedicationReminder{
		ID:             uuid.New().String(),
		PatientID:      patientID,
		MedicationName: input.MedicationName,
		Dosage:         input.Dosage,
		Frequency:      input.Frequency,
		TimeOfDay:      input.TimeOfDay,
		Status:         model.DosePending,
		OccurredAt:     occurredAt,
	}

	if err := s.store.Create(ctx, reminder); err != nil {
		return nil, err
	}

	s.logger.Info("medication dose scheduled",
		zap.String("patient_id", patientID),
		zap.String("medication_name", reminder.MedicationName),
	)

	return reminder, nil
}

// History lists a patient's medication doses, newest first
func (s *MedicationService) History(ctx context.Context, patientID string) ([]model.MedicationReminder, error) {
	return s.store.FindByPatientID(ctx, patientID)
}

// SetStatus marks a dose the patient owns as taken or missed
func (s *MedicationService) SetStatus(ctx context.Context, patientID, doseID string, status model.DoseStatus) error {
	if !status.Valid() {
		return validationErrorf("status must be Pending, Taken, or Missed")
	}

	reminder, err := s.store.FindByID(ctx, doseID)
	if err != nil {
		return err
	}
	if reminder.PatientID != patientID {
		return ErrForbidden
	}

	if err := s.store.UpdateStatus(ctx, doseID, status); err != nil {
		return err
	}

	s.logger.Info("dose status updated",
		zap.String("patient_id", patientID),
		zap.String("dose_id", doseID),
		zap.String("status", string(status)),
	)
	return nil
}
