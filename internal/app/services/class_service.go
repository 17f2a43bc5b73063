package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/sportfit/internal/app/auth"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// ClassService defines the interface for class offering operations
type ClassService interface {
	CreateClass(ctx context.Context, caller appauth.Identity, req dto.CreateClassRequest) (*models.ClassOffering, error)
	GetClass(ctx context.Context, id int64) (*models.ClassOffering, error)
	ListMyClasses(ctx context.Context, caller appauth.Identity, email string) ([]*models.ClassOffering, error)
	ListAllClasses(ctx context.Context) ([]*models.ClassOffering, error)
	ListApprovedClasses(ctx context.Context) ([]*models.ClassOffering, error)
	UpdateClass(ctx context.Context, caller appauth.Identity, id int64, req dto.UpdateClassRequest) (*models.ClassOffering, error)
	DeleteClass(ctx context.Context, caller appauth.Identity, id int64) error
	Approve(ctx context.Context, id int64) (*models.ClassOffering, error)
	Deny(ctx context.Context, id int64) (*models.ClassOffering, error)
	SetFeedback(ctx context.Context, id int64, feedback string) (*models.ClassOffering, error)
}

// classServiceImpl implements the ClassService interface
type classServiceImpl struct {
	classes   ClassStore
	lifecycle ClassLifecycle
	logger    zerolog.Logger
}

// NewClassService creates a new class service
func NewClassService(classes ClassStore, lifecycle ClassLifecycle, logger zerolog.Logger) ClassService {
	return &classServiceImpl{
		classes:   classes,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func validateClassID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: class ID must be positive", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateClass submits a class owned by the caller. It starts pending with every seat free.
func (s *classServiceImpl) CreateClass(ctx context.Context, caller appauth.Identity, req dto.CreateClassRequest) (*models.ClassOffering, error) {
	className := strings.TrimSpace(req.ClassName)
	if className == "" {
		return nil, fmt.Errorf("%w: class name is required", apperrors.ErrValidationFailed)
	}
	if req.Seats < 1 {
		return nil, fmt.Errorf("%w: a class needs at least one seat", apperrors.ErrValidationFailed)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidationFailed)
	}

	instructorName := strings.TrimSpace(req.InstructorName)
	if instructorName == "" {
		instructorName = caller.Name
	}

	class := &models.ClassOffering{
		InstructorEmail: normalizeEmail(caller.Email),
		InstructorName:  instructorName,
		ClassName:       className,
		Picture:         strings.TrimSpace(req.Picture),
		Price:           req.Price,
		Capacity:        req.Seats,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("classID", class.ID).
		Str("instructor", class.InstructorEmail).
		Msg("Class submitted for approval")
	return class, nil
}

// GetClass returns one class regardless of its status
func (s *classServiceImpl) GetClass(ctx context.Context, id int64) (*models.ClassOffering, error) {
	if err := validateClassID(id); err != nil {
		return nil, err
	}
	return s.classes.GetByID(ctx, id)
}

// ListMyClasses returns the classes the caller teaches
func (s *classServiceImpl) ListMyClasses(ctx context.Context, caller appauth.Identity, email string) ([]*models.ClassOffering, error) {
	if email != "" && normalizeEmail(email) != normalizeEmail(caller.Email) {
		return nil, apperrors.NewForbiddenError("you can only list your own classes")
	}
	return s.classes.List(ctx, models.ClassFilter{InstructorEmail: normalizeEmail(caller.Email)})
}

// ListAllClasses returns classes in every status
func (s *classServiceImpl) ListAllClasses(ctx context.Context) ([]*models.ClassOffering, error) {
	return s.classes.List(ctx, models.ClassFilter{})
}

// ListApprovedClasses returns the public catalog, most enrolled first
func (s *classServiceImpl) ListApprovedClasses(ctx context.Context) ([]*models.ClassOffering, error) {
	return s.classes.List(ctx, models.ClassFilter{
		Statuses:        []models.ClassStatus{models.ClassStatusApproved},
		OrderByEnrolled: true,
	})
}

// UpdateClass changes the mutable fields of a class the caller teaches
func (s *classServiceImpl) UpdateClass(ctx context.Context, caller appauth.Identity, id int64, req dto.UpdateClassRequest) (*models.ClassOffering, error) {
	if err := validateClassID(id); err != nil {
		return nil, err
	}

	upd := req.ToModel()
	if upd.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrValidationFailed)
	}
	if upd.ClassName != nil {
		trimmed := strings.TrimSpace(*upd.ClassName)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: class name cannot be empty", apperrors.ErrValidationFailed)
		}
		upd.ClassName = &trimmed
	}
	if upd.Capacity != nil && *upd.Capacity < 1 {
		return nil, fmt.Errorf("%w: a class needs at least one seat", apperrors.ErrValidationFailed)
	}

	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appauth.ValidateClassOwnership(caller, class); err != nil {
		return nil, err
	}

	updated, err := s.classes.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("classID", id).Str("instructor", caller.Email).Msg("Class updated")
	return updated, nil
}

// DeleteClass removes a class; allowed for its instructor and for admins
func (s *classServiceImpl) DeleteClass(ctx context.Context, caller appauth.Identity, id int64) error {
	if err := validateClassID(id); err != nil {
		return err
	}

	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := appauth.ValidateClassOwnership(caller, class); err != nil {
		return err
	}

	if err := s.classes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("classID", id).Str("by", caller.Email).Msg("Class deleted")
	return nil
}

// Approve publishes a class
func (s *classServiceImpl) Approve(ctx context.Context, id int64) (*models.ClassOffering, error) {
	return s.transition(ctx, id, models.ClassStatusApproved)
}

// Deny rejects a class
func (s *classServiceImpl) Deny(ctx context.Context, id int64) (*models.ClassOffering, error) {
	return s.transition(ctx, id, models.ClassStatusDenied)
}

func (s *classServiceImpl) transition(ctx context.Context, id int64, target models.ClassStatus) (*models.ClassOffering, error) {
	if err := validateClassID(id); err != nil {
		return nil, err
	}

	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.lifecycle.Transition(class.Status, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return class, nil
	}

	updated, err := s.classes.SetStatus(ctx, id, class.Status, target)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Int64("classID", id).
		Str("from", string(class.Status)).
		Str("to", string(target)).
		Msg("Class status changed")
	return updated, nil
}

// SetFeedback stores admin feedback; status is left as is
func (s *classServiceImpl) SetFeedback(ctx context.Context, id int64, feedback string) (*models.ClassOffering, error) {
	if err := validateClassID(id); err != nil {
		return nil, err
	}
	if len(feedback) > 2000 {
		return nil, fmt.Errorf("%w: feedback is too long (max 2000 characters)", apperrors.ErrValidationFailed)
	}
	return s.classes.SetFeedback(ctx, id, strings.TrimSpace(feedback))
}
