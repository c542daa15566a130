package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// userAdminStore is the account persistence the user service depends on
type userAdminStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindActivePatients(ctx context.Context) ([]model.User, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// ProfileUpdate carries the editable fields of a user profile
type ProfileUpdate struct {
	FullName               *string
	MedicalHistory         *string
	Allergies              *string
	EmergencyContactName   *string
	EmergencyContactNumber *string
	Specialization         *string
}

// UserService handles profiles, the provider roster, and admin operations
type UserService struct {
	store  userAdminStore
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(store userAdminStore, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// Profile retrieves a user's own account
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.store.FindByID(ctx, userID)
}

// UpdateProfile applies a partial update to the user's own account
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*model.User, error) {
	fields := bson.M{}
	if update.FullName != nil {
		if *update.FullName == "" {
			return nil, validationErrorf("full name must not be empty")
		}
		fields["fullName"] = *update.FullName
	}
	if update.MedicalHistory != nil {
		fields["medicalHistory"] = *update.MedicalHistory
	}
	if update.Allergies != nil {
		fields["allergies"] = *update.Allergies
	}
	if update.EmergencyContactName != nil {
		fields["emergencyContactName"] = *update.EmergencyContactName
	}
	if update.EmergencyContactNumber != nil {
		fields["emergencyContactNumber"] = *update.EmergencyContactNumber
	}
	if update.Specialization != nil {
		fields["specialization"] = *update.Specialization
	}

	if len(fields) > 0 {
		if err := s.store.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
		s.logger.Info("profile updated", zap.String("user_id", userID))
	}

	return s.store.FindByID(ctx, userID)
}

// ActivePatients lists enrolled patients for the provider roster
func (s *UserService) ActivePatients(ctx context.Context) ([]model.User, error) {
	return s.store.FindActivePatients(ctx)
}

// AllUsers lists every account for admin review
func (s *UserService) AllUsers(ctx context.Context) ([]model.User, error) {
	return s.store.FindAll(ctx)
}

// SetActive enables or disables an account. Disabled accounts cannot
// log in or refresh tokens.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) error {
	if err := s.store.SetActive(ctx, userID, active); err != nil {
		return err
	}
	s.logger.Info("account active flag changed",
		zap.String("user_id", userID),
		zap.Bool("active", active),
	)
	return nil
}

// DeleteUser permanently removes an account
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("account deleted", zap.String("user_id", userID))
	return nil
}
