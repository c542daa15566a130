package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// ErrNotFound is returned when a lookup matches no document
var ErrNotFound = errors.New("not found")

// UserRepository manages user accounts
type UserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		logger:     logger,
	}
}

// Create inserts a new user account
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		r.logger.Error("failed to create user", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByEmail retrieves a user by email address
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// FindByID retrieves a user by id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Error("failed to find user", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindAll retrieves every user account, newest first
func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, findNewestFirst("createdAt"))
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindActivePatients retrieves the active patient roster
func (r *UserRepository) FindActivePatients(ctx context.Context) ([]model.User, error) {
	filter := bson.M{"role": model.RolePatient, "active": true}
	cursor, err := r.collection.Find(ctx, filter, findNewestFirst("createdAt"))
	if err != nil {
		r.logger.Error("failed to list active patients", zap.Error(err))
		return nil, fmt.Errorf("failed to list active patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []model.User
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}
	return patients, nil
}

// UpdateFields applies a partial update to a user document
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	fields["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		r.logger.Error("failed to update user", zap.Error(err), zap.String("user_id", id))
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips the active flag on a user account
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.UpdateFields(ctx, id, bson.M{"active": active})
}

// Delete removes a user account permanently
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err), zap.String("user_id", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
