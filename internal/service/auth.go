package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiqretemirxd/mycardiacrehab/internal/auth"
	"github.com/fiqretemirxd/mycardiacrehab/internal/repository"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when signing up with an email already registered
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidRegisterCode rejects provider signups without the shared code
	ErrInvalidRegisterCode = errors.New("invalid provider registration code")
	// ErrAccountDisabled blocks login for deactivated accounts
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrInvalidToken is returned for malformed or expired refresh tokens
	ErrInvalidToken = errors.New("invalid or expired token")
)

// userAccountStore is the account persistence the auth service depends on
type userAccountStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// TokenPair carries a fresh access and refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SignupInput carries the fields of a registration request
type SignupInput struct {
	FullName       string
	Email          string
	Password       string
	Role           model.Role
	RegisterCode   string
	Specialization *string
}

// AuthService handles registration, login, and token refresh
type AuthService struct {
	users                userAccountStore
	jwtSecret            string
	accessTokenExpiry    time.Duration
	refreshTokenExpiry   time.Duration
	providerRegisterCode string
	logger               *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users userAccountStore, jwtSecret string, accessExpiry, refreshExpiry time.Duration, providerRegisterCode string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:                users,
		jwtSecret:            jwtSecret,
		accessTokenExpiry:    accessExpiry,
		refreshTokenExpiry:   refreshExpiry,
		providerRegisterCode: providerRegisterCode,
		logger:               logger,
	}
}

// Signup registers a new account. Provider accounts require the shared
// registration code; admin accounts cannot self-register.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*model.User, *TokenPair, error) {
	if input.Role == model.RoleAdmin {
		return nil, nil, validationErrorf("admin accounts cannot self-register")
	}
	if input.Role == model.RoleProvider && input.RegisterCode != s.providerRegisterCode {
		return nil, nil, ErrInvalidRegisterCode
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.New().String(),
		FullName:       input.FullName,
		Email:          input.Email,
		PasswordHash:   hash,
		Role:           input.Role,
		Specialization: input.Specialization,
		Active:         true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return user, tokens, nil
}

// Login authenticates an email and password pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if auth.CheckPassword(user.PasswordHash, password) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, nil, ErrAccountDisabled
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(user, s.jwtSecret, s.accessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := auth.GenerateRefreshToken(user, s.jwtSecret, s.refreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
