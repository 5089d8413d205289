package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elevatehq/elevate-backend/internal/app/models"
	"github.com/elevatehq/elevate-backend/internal/pkg/apperrors"
	"github.com/elevatehq/elevate-backend/internal/pkg/auth"
)

// UserService manages tenant-scoped platform accounts. Token issuance lives
// in the identity layer; this service only backs it with persisted users.
type UserService struct {
	userRepo UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserParams carries the input for CreateUser
type CreateUserParams struct {
	TenantID  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.RoleType
}

// CreateUser creates a user with a bcrypt-hashed password. Email is unique
// within the tenant.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, apperrors.NewBadRequestError("email cannot be empty")
	}
	if len(params.Password) < 8 {
		return nil, apperrors.NewBadRequestError("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByEmailAndTenant(ctx, email, params.TenantID)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		TenantID:     params.TenantID,
		Email:        email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         params.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate verifies a user's credentials within a tenant
func (s *UserService) Authenticate(ctx context.Context, email, password, tenantID string) (*models.User, error) {
	user, err := s.userRepo.GetByEmailAndTenant(ctx, strings.ToLower(strings.TrimSpace(email)), tenantID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}
