package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/repository"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// appointmentStore is the persistence the appointment service depends on
type appointmentStore interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByPatientID(ctx context.Context, patientID string, category repository.AppointmentCategory, now time.Time) ([]model.Appointment, error)
	FindByProviderID(ctx context.Context, providerID string) ([]model.Appointment, error)
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) error
	Reschedule(ctx context.Context, id string, scheduledAt time.Time) error
}

// AppointmentInput carries the fields of a booking request
type AppointmentInput struct {
	ProviderID  string
	ScheduledAt time.Time
	Mode        model.AppointmentMode
	Notes       *string
}

// AppointmentService manages bookings between patients and providers
type AppointmentService struct {
	store  appointmentStore
	users  patientReader
	logger *zap.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(store appointmentStore, users patientReader, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{store: store, users: users, logger: logger}
}

// Book schedules a new appointment with a provider
func (s *AppointmentService) Book(ctx context.Context, patientID string, input AppointmentInput) (*model.Appointment, error) {
	if !input.Mode.Valid() {
		return nil, validationErrorf("mode must be virtual or in-person")
	}
	if input.ScheduledAt.Before(time.Now()) {
		return nil, validationErrorf("appointment time must be in the future")
	}

	provider, err := s.users.FindByID(ctx, input.ProviderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationErrorf("provider not found")
		}
		return nil, fmt.Errorf("failed to look up provider: %w", err)
	}
	if provider.Role != model.RoleProvider {
		return nil, validationErrorf("selected user is not a provider")
	}

	appt := &model.Appointment{
		ID:           uuid.New().String(),
		PatientID:    patientID,
		ProviderID:   provider.ID,
		ProviderName: provider.FullName,
		ScheduledAt:  input.ScheduledAt,
		Mode:         input.Mode,
		Status:       model.AppointmentScheduled,
		Notes:        input.Notes,
	}

	if err := s.store.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.String("patient_id", patientID),
		zap.String("provider_id", provider.ID),
		zap.Time("scheduled_at", appt.ScheduledAt),
	)

	return appt, nil
}

// List retrieves a patient's appointments in one category
func (s *AppointmentService) List(ctx context.Context, patientID string, category repository.AppointmentCategory) ([]model.Appointment, error) {
	if !category.Valid() {
		return nil, validationErrorf("category must be upcoming, past, or cancelled")
	}
	return s.store.FindByPatientID(ctx, patientID, category, time.Now())
}

// ProviderSchedule lists every appointment booked with a provider
func (s *AppointmentService) ProviderSchedule(ctx context.Context, providerID string) ([]model.Appointment, error) {
	return s.store.FindByProviderID(ctx, providerID)
}

// Cancel marks one of the patient's appointments as cancelled
func (s *AppointmentService) Cancel(ctx context.Context, patientID, apptID string) error {
	if err := s.checkOwner(ctx, patientID, apptID); err != nil {
		return err
	}
	return s.store.UpdateStatus(ctx, apptID, model.AppointmentCancelled)
}

// Complete marks an appointment as completed. Only the booked provider may
// complete it.
func (s *AppointmentService) Complete(ctx context.Context, providerID, apptID string) error {
	appt, err := s.store.FindByID(ctx, apptID)
	if err != nil {
		return err
	}
	if appt.ProviderID != providerID {
		return ErrForbidden
	}
	return s.store.UpdateStatus(ctx, apptID, model.AppointmentCompleted)
}

// Reschedule moves one of the patient's appointments to a new future time
func (s *AppointmentService) Reschedule(ctx context.Context, patientID, apptID string, scheduledAt time.Time) error {
	if scheduledAt.Before(time.Now()) {
		return validationErrorf("appointment time must be in the future")
	}
	if err := s.checkOwner(ctx, patientID, apptID); err != nil {
		return err
	}
	return s.store.Reschedule(ctx, apptID, scheduledAt)
}

func (s *AppointmentService) checkOwner(ctx context.Context, patientID, apptID string) error {
	appt, err := s.store.FindByID(ctx, apptID)
	if err != nil {
		return err
	}
	if appt.PatientID != patientID {
		return ErrForbidden
	}
	return nil
}
