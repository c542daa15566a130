package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

type MockUserAdminStore struct {
	mock.Mock
}

func (m *MockUserAdminStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserAdminStore) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserAdminStore) FindActivePatients(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserAdminStore) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserAdminStore) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockUserAdminStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	store := new(MockUserAdminStore)
	svc := NewUserService(store, zap.NewNop())

	name := "Jane Doe"
	allergies := "penicillin"
	store.On("UpdateFields", mock.Anything, "user-1", bson.M{
		"fullName":  "Jane Doe",
		"allergies": "penicillin",
	}).Return(nil)
	store.On("FindByID", mock.Anything, "user-1").Return(&model.User{
		ID:       "user-1",
		FullName: "Jane Doe",
	}, nil)

	user, err := svc.UpdateProfile(context.Background(), "user-1", ProfileUpdate{
		FullName:  &name,
		Allergies: &allergies,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.FullName)
	store.AssertExpectations(t)
}

func TestUserService_UpdateProfile_EmptyName(t *testing.T) {
	store := new(MockUserAdminStore)
	svc := NewUserService(store, zap.NewNop())

	empty := ""
	_, err := svc.UpdateProfile(context.Background(), "user-1", ProfileUpdate{FullName: &empty})

	var ve ValidationError
	assert.ErrorAs(t, err, &ve)
	store.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_NoChanges(t *testing.T) {
	store := new(MockUserAdminStore)
	svc := NewUserService(store, zap.NewNop())

	store.On("FindByID", mock.Anything, "user-1").Return(&model.User{ID: "user-1"}, nil)

	_, err := svc.UpdateProfile(context.Background(), "user-1", ProfileUpdate{})

	assert.NoError(t, err)
	store.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_SetActive(t *testing.T) {
	store := new(MockUserAdminStore)
	svc := NewUserService(store, zap.NewNop())

	store.On("SetActive", mock.Anything, "user-1", false).Return(nil)

	assert.NoError(t, svc.SetActive(context.Background(), "user-1", false))
	store.AssertExpectations(t)
}

func TestUserService_ActivePatients(t *testing.T) {
	store := new(MockUserAdminStore)
	svc := NewUserService(store, zap.NewNop())

	store.On("FindActivePatients", mock.Anything).Return([]model.User{
		{ID: "p1", Role: model.RolePatient, Active: true},
		{ID: "p2", Role: model.RolePatient, Active: true},
	}, nil)

	patients, err := svc.ActivePatients(context.Background())

	assert.NoError(t, err)
	assert.Len(t, patients, 2)
}
