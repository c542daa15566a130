package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// ErrForbidden is returned when a user touches a record they do not own
var ErrForbidden = errors.New("record belongs to another patient")

// exerciseStore is the persistence the exercise service depends on
type exerciseStore interface {
	Create(ctx context.Context, log *model.ExerciseLog) error
	FindByPatientID(ctx context.Context, patientID string) ([]model.ExerciseLog, error)
	Update(ctx context.Context, id, exerciseType string, durationMinutes int, intensity model.Intensity) error
	Delete(ctx context.Context, id string) error
	FindOwner(ctx context.Context, id string) (string, error)
}

// ExerciseInput carries the fields of a log or update request
type ExerciseInput struct {
	ExerciseType    string
	DurationMinutes int
	Intensity       model.Intensity
	Notes           *string
	OccurredAt      *time.Time
}

// ExerciseService manages patient exercise logs
type ExerciseService struct {
	store  exerciseStore
	logger *zap.Logger
}

// NewExerciseService creates a new ExerciseService
func NewExerciseService(store exerciseStore, logger *zap.Logger) *ExerciseService {
	return &ExerciseService{store: store, logger: logger}
}

// Log records a new exercise session for the patient
func (s *ExerciseService) Log(ctx context.Context, patientID string, input ExerciseInput) (*model.ExerciseLog, error) {
	if err := validateExerciseInput(input); err != nil {
		return nil, err
	}

	occurredAt := time.Now()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	log := &model.ExerciseLog{
		ID:              uuid.New().String(),
		PatientID:       patientID,
		ExerciseType:    input.ExerciseType,
		DurationMinutes: input.DurationMinutes,
		Intensity:       input.Intensity,
		Notes:           input.Notes,
		OccurredAt:      occurredAt,
	}

	if err := s.store.Create(ctx, log); err != nil {
		return nil, err
	}

	s.logger.Info("exercise logged",
		zap.String("patient_id", patientID),
		zap.String("exercise_type", log.ExerciseType),
		zap.Int("duration_minutes", log.DurationMinutes),
	)

	return log, nil
}

// History lists a patient's exercise sessions, newest first
func (s *ExerciseService) History(ctx context.Context, patientID string) ([]model.ExerciseLog, error) {
	return s.store.FindByPatientID(ctx, patientID)
}

// Update modifies an exercise log the patient owns
func (s *ExerciseService) Update(ctx context.Context, patientID, logID string, input ExerciseInput) error {
	if err := validateExerciseInput(input); err != nil {
		return err
	}
	if err := s.checkOwner(ctx, patientID, logID); err != nil {
		return err
	}
	return s.store.Update(ctx, logID, input.ExerciseType, input.DurationMinutes, input.Intensity)
}

// Delete removes an exercise log the patient owns
func (s *ExerciseService) Delete(ctx context.Context, patientID, logID string) error {
	if err := s.checkOwner(ctx, patientID, logID); err != nil {
		return err
	}
	return s.store.Delete(ctx, logID)
}

func (s *ExerciseService) checkOwner(ctx context.Context, patientID, logID string) error {
	owner, err := s.store.FindOwner(ctx, logID)
	if err != nil {
		return err
	}
	if owner != patientID {
		return ErrForbidden
	}
	return nil
}

func validateExerciseInput(input ExerciseInput) error {
	if input.ExerciseType == "" {
		return validationErrorf("exercise type is required")
	}
	if input.DurationMinutes < 0 {
		return validationErrorf("duration must not be negative")
	}
	if !input.Intensity.Valid() {
		return validationErrorf("intensity must be Low, Medium, or High")
	}
	return nil
}
