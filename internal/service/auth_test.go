package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/auth"
	"github.com/fiqretemirxd/mycardiacrehab/internal/repository"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// MockUserAccountStore is a mock implementation of userAccountStore
type MockUserAccountStore struct {
	mock.Mock
}

func (m *MockUserAccountStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserAccountStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserAccountStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newAuthServiceForTest(store *MockUserAccountStore) *AuthService {
	return NewAuthService(store, "test-secret", 15*time.Minute, 7*24*time.Hour, "provider-code", zap.NewNop())
}

func TestAuthService_Signup_Patient(t *testing.T) {
	store := new(MockUserAccountStore)
	service := newAuthServiceForTest(store)

	ctx := context.Background()
	store.On("FindByEmail", ctx, "jane@example.com").Return(nil, repository.ErrNotFound)
	store.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

	user, tokens, err := service.Signup(ctx, SignupInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "correct-horse",
		Role:     model.RolePatient,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RolePatient, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	store.AssertExpectations(t)
}

func TestAuthService_Signup_ProviderRequiresCode(t *testing.T) {
	store := new(MockUserAccountStore)
	service := newAuthServiceForTest(store)

	_, _, err := service.Signup(context.Background(), SignupInput{
		FullName:     "Dr. Smith",
		Email:        "smith@example.com",
		Password:     "password123",
		Role:         model.RoleProvider,
		RegisterCode: "wrong-code",
	})

	assert.ErrorIs(t, err, ErrInvalidRegisterCode)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_AdminCannotSelfRegister(t *testing.T) {
	service := newAuthServiceForTest(new(MockUserAccountStore))

	_, _, err := service.Signup(context.Background(), SignupInput{
		FullName: "Root",
		Email:    "root@example.com",
		Password: "password123",
		Role:     model.RoleAdmin,
	})

	assert.Error(t, err)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	store := new(MockUserAccountStore)
	service := newAuthServiceForTest(store)

	ctx := context.Background()
	store.On("FindByEmail", ctx, "jane@example.com").
		Return(&model.User{ID: "existing", Email: "jane@example.com"}, nil)

	_, _, err := service.Signup(ctx, SignupInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "password123",
		Role:     model.RolePatient,
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	account := &model.User{
		ID:           "user-1",
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         model.RolePatient,
		Active:       true,
	}

	t.Run("success", func(t *testing.T) {
		store := new(MockUserAccountStore)
		service := newAuthServiceForTest(store)
		store.On("FindByEmail", mock.Anything, "jane@example.com").Return(account, nil)

		user, tokens, err := service.Login(context.Background(), "jane@example.com", "password123")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		store := new(MockUserAccountStore)
		service := newAuthServiceForTest(store)
		store.On("FindByEmail", mock.Anything, "jane@example.com").Return(account, nil)

		_, _, err := service.Login(context.Background(), "jane@example.com", "nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		store := new(MockUserAccountStore)
		service := newAuthServiceForTest(store)
		store.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

		_, _, err := service.Login(context.Background(), "ghost@example.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		disabled := *account
		disabled.Active = false

		store := new(MockUserAccountStore)
		service := newAuthServiceForTest(store)
		store.On("FindByEmail", mock.Anything, "jane@example.com").Return(&disabled, nil)

		_, _, err := service.Login(context.Background(), "jane@example.com", "password123")

		assert.ErrorIs(t, err, ErrAccountDisabled)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	account := &model.User{ID: "user-1", Email: "jane@example.com", Role: model.RolePatient, Active: true}

	t.Run("valid refresh token", func(t *testing.T) {
		store := new(MockUserAccountStore)
		service := newAuthServiceForTest(store)
		store.On("FindByID", mock.Anything, "user-1").Return(account, nil)

		refresh, err := auth.GenerateRefreshToken(account, "test-secret", time.Hour)
		assert.NoError(t, err)

		tokens, err := service.Refresh(context.Background(), refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		service := newAuthServiceForTest(new(MockUserAccountStore))

		access, err := auth.GenerateAccessToken(account, "test-secret", time.Hour)
		assert.NoError(t, err)

		_, err = service.Refresh(context.Background(), access)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service := newAuthServiceForTest(new(MockUserAccountStore))

		_, err := service.Refresh(context.Background(), "not-a-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
