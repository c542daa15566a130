package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/repository"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// MockAppointmentStore is a mock implementation of appointmentStore
type MockAppointmentStore struct {
	mock.Mock
}

func (m *MockAppointmentStore) Create(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentStore) FindByPatientID(ctx context.Context, patientID string, category repository.AppointmentCategory, now time.Time) ([]model.Appointment, error) {
	args := m.Called(ctx, patientID, category, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentStore) FindByProviderID(ctx context.Context, providerID string) ([]model.Appointment, error) {
	args := m.Called(ctx, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Appointment), args.Error(1)
}

func (m *MockAppointmentStore) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentStore) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAppointmentStore) Reschedule(ctx context.Context, id string, scheduledAt time.Time) error {
	args := m.Called(ctx, id, scheduledAt)
	return args.Error(0)
}

func TestAppointmentService_Book_Success(t *testing.T) {
	store := new(MockAppointmentStore)
	users := new(MockUserReader)
	service := NewAppointmentService(store, users, zap.NewNop())

	ctx := context.Background()
	users.On("FindByID", ctx, "provider-1").
		Return(&model.User{ID: "provider-1", FullName: "Dr. Smith", Role: model.RoleProvider}, nil)
	store.On("Create", ctx, mock.AnythingOfType("*model.Appointment")).Return(nil)

	appt, err := service.Book(ctx, "patient-1", AppointmentInput{
		ProviderID:  "provider-1",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Mode:        model.ModeVirtual,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.AppointmentScheduled, appt.Status)
	assert.Equal(t, "Dr. Smith", appt.ProviderName)
	store.AssertExpectations(t)
}

func TestAppointmentService_Book_ValidationErrors(t *testing.T) {
	users := new(MockUserReader)
	service := NewAppointmentService(new(MockAppointmentStore), users, zap.NewNop())
	ctx := context.Background()

	t.Run("past time", func(t *testing.T) {
		_, err := service.Book(ctx, "patient-1", AppointmentInput{
			ProviderID:  "provider-1",
			ScheduledAt: time.Now().Add(-time.Hour),
			Mode:        model.ModeVirtual,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := service.Book(ctx, "patient-1", AppointmentInput{
			ProviderID:  "provider-1",
			ScheduledAt: time.Now().Add(time.Hour),
			Mode:        "telepathy",
		})
		assert.Error(t, err)
	})

	t.Run("booked user is not a provider", func(t *testing.T) {
		users.On("FindByID", ctx, "patient-2").
			Return(&model.User{ID: "patient-2", Role: model.RolePatient}, nil)

		_, err := service.Book(ctx, "patient-1", AppointmentInput{
			ProviderID:  "patient-2",
			ScheduledAt: time.Now().Add(time.Hour),
			Mode:        model.ModeInPerson,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a provider")
	})
}

func TestAppointmentService_List_RejectsUnknownCategory(t *testing.T) {
	service := NewAppointmentService(new(MockAppointmentStore), new(MockUserReader), zap.NewNop())

	_, err := service.List(context.Background(), "patient-1", "archived")

	assert.Error(t, err)
	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAppointmentService_Cancel_RejectsForeignAppointment(t *testing.T) {
	store := new(MockAppointmentStore)
	service := NewAppointmentService(store, new(MockUserReader), zap.NewNop())

	ctx := context.Background()
	store.On("FindByID", ctx, "appt-1").
		Return(&model.Appointment{ID: "appt-1", PatientID: "someone-else"}, nil)

	err := service.Cancel(ctx, "patient-1", "appt-1")

	assert.ErrorIs(t, err, ErrForbidden)
	store.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentService_Complete_OnlyBookedProvider(t *testing.T) {
	store := new(MockAppointmentStore)
	service := NewAppointmentService(store, new(MockUserReader), zap.NewNop())

	ctx := context.Background()
	store.On("FindByID", ctx, "appt-1").
		Return(&model.Appointment{ID: "appt-1", PatientID: "patient-1", ProviderID: "provider-1"}, nil)
	store.On("UpdateStatus", ctx, "appt-1", model.AppointmentCompleted).Return(nil)

	assert.ErrorIs(t, service.Complete(ctx, "other-provider", "appt-1"), ErrForbidden)
	assert.NoError(t, service.Complete(ctx, "provider-1", "appt-1"))
}
