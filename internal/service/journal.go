package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// journalStore is the persistence the journal service depends on
type journalStore interface {
	Create(ctx context.Context, entry *model.JournalEntry) error
	FindByPatientID(ctx context.Context, patientID string) ([]model.JournalEntry, error)
	Update(ctx context.Context, id string, mood model.Mood, symptoms, dietNotes *string, notes string) error
	Delete(ctx context.Context, id string) error
	FindOwner(ctx context.Context, id string) (string, error)
}

// JournalInput carries the fields of a journal entry request
type JournalInput struct {
	Mood       model.Mood
	Symptoms   *string
	DietNotes  *string
	Notes      string
	OccurredAt *time.Time
}

// JournalService manages mood and symptom journal entries
type JournalService struct {
	store  journalStore
	logger *zap.Logger
}

// NewJournalService creates a new JournalService
func NewJournalService(store journalStore, logger *zap.Logger) *JournalService {
	return &JournalService{store: store, logger: logger}
}

// Record adds a new journal entry for the patient
func (s *JournalService) Record(ctx context.Context, patientID string, input JournalInput) (*model.JournalEntry, error) {
	if !input.Mood.Valid() {
		return nil, validationErrorf("mood must be one of Happy, Neutral, Tired, Anxious, Stressed, Sad")
	}

	occurredAt := time.Now()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	entry := &model.JournalEntry{
		ID:         uuid.New().String(),
		PatientID:  patientID,
		Mood:       input.Mood,
		Symptoms:   input.Symptoms,
		DietNotes:  input.DietNotes,
		Notes:      input.Notes,
		OccurredAt: occurredAt,
	}

	if err := s.store.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("journal entry recorded",
		zap.String("patient_id", patientID),
		zap.String("mood", string(entry.Mood)),
	)

	return entry, nil
}

// History lists a patient's journal entries, newest first
func (s *JournalService) History(ctx context.Context, patientID string) ([]model.JournalEntry, error) {
	return s.store.FindByPatientID(ctx, patientID)
}

// Update modifies a journal entry the patient owns
func (s *JournalService) Update(ctx context.Context, patientID, entryID string, input JournalInput) error {
	if !input.Mood.Valid() {
		return validationErrorf("mood must be one of Happy, Neutral, Tired, Anxious, Stressed, Sad")
	}
	if err := s.checkOwner(ctx, patientID, entryID); err != nil {
		return err
	}
	return s.store.Update(ctx, entryID, input.Mood, input.Symptoms, input.DietNotes, input.Notes)
}

// Delete removes a journal entry the patient owns
func (s *JournalService) Delete(ctx context.Context, patientID, entryID string) error {
	if err := s.checkOwner(ctx, patientID, entryID); err != nil {
		return err
	}
	return s.store.Delete(ctx, entryID)
}

func (s *JournalService) checkOwner(ctx context.Context, patientID, entryID string) error {
	owner, err := s.store.FindOwner(ctx, entryID)
	if err != nil {
		return err
	}
	if owner != patientID {
		return ErrForbidden
	}
	return nil
}
