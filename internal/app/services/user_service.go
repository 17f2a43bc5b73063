package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/sportfit/internal/app/auth"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/auth"
)

// UserService defines the interface for user operations
type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	PromoteToAdmin(ctx context.Context, userID int64) (*models.User, error)
	PromoteToInstructor(ctx context.Context, userID int64) (*models.User, error)
	IsAdmin(ctx context.Context, caller appauth.Identity, email string) (bool, error)
	IsInstructor(ctx context.Context, caller appauth.Identity, email string) (bool, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	users       UserStore
	instructors InstructorStore
	logger      zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(users UserStore, instructors InstructorStore, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		users:       users,
		instructors: instructors,
		logger:      logger,
	}
}

// CreateUser inserts the user unless the email is already registered.
// An existing email is not an error; Created reports which case happened.
func (s *userServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return &dto.CreateUserResponse{ID: existing.ID, Email: existing.Email, Created: false}, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		PhotoURL: strings.TrimSpace(req.PhotoURL),
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = &hash
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent registration of the same email
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			existing, getErr := s.users.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, getErr
			}
			return &dto.CreateUserResponse{ID: existing.ID, Email: existing.Email, Created: false}, nil
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", id).Str("email", email).Msg("User registered")
	return &dto.CreateUserResponse{ID: id, Email: email, Created: true}, nil
}

// ListUsers returns every registered user
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// PromoteToAdmin sets the user's role to admin
func (s *userServiceImpl) PromoteToAdmin(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", apperrors.ErrValidationFailed)
	}

	user, err := s.users.UpdateRole(ctx, userID, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Msg("User promoted to admin")
	return user, nil
}

// PromoteToInstructor sets the user's role to instructor and makes sure an
// instructor profile exists for them. When the profile cannot be created the
// previous role is restored.
func (s *userServiceImpl) PromoteToInstructor(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user ID must be positive", apperrors.ErrValidationFailed)
	}

	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	previous := current.Role

	user, err := s.users.UpdateRole(ctx, userID, models.RoleInstructor)
	if err != nil {
		return nil, err
	}
	if _, err := s.instructors.Ensure(ctx, user.Email, user.Name, user.PhotoURL); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to create instructor profile")
		if _, revertErr := s.users.UpdateRole(ctx, userID, previous); revertErr != nil {
			s.logger.Error().Err(revertErr).
				Int64("userID", userID).
				Str("role", string(previous)).
				Msg("Failed to restore role after instructor profile error")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("User promoted to instructor")
	return user, nil
}

// IsAdmin answers for the caller only; asking about someone else yields false
func (s *userServiceImpl) IsAdmin(ctx context.Context, caller appauth.Identity, email string) (bool, error) {
	return s.hasRole(ctx, caller, email, models.RoleAdmin)
}

// IsInstructor answers for the caller only; asking about someone else yields false
func (s *userServiceImpl) IsInstructor(ctx context.Context, caller appauth.Identity, email string) (bool, error) {
	return s.hasRole(ctx, caller, email, models.RoleInstructor)
}

func (s *userServiceImpl) hasRole(ctx context.Context, caller appauth.Identity, email string, role models.RoleType) (bool, error) {
	if normalizeEmail(email) != normalizeEmail(caller.Email) {
		return false, nil
	}
	current, err := s.users.GetRoleByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}
	return current == role, nil
}
