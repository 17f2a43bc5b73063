package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/sportfit/internal/app/auth"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// SelectionService manages the student's cart
type SelectionService interface {
	AddToCart(ctx context.Context, caller appauth.Identity, classID int64) (*models.Selection, error)
	ListCart(ctx context.Context, caller appauth.Identity, email string) ([]*models.Selection, error)
	RemoveFromCart(ctx context.Context, caller appauth.Identity, id int64) error
}

// selectionServiceImpl implements the SelectionService interface
type selectionServiceImpl struct {
	selections SelectionStore
	classes    ClassStore
	logger     zerolog.Logger
}

// NewSelectionService creates a new selection service
func NewSelectionService(selections SelectionStore, classes ClassStore, logger zerolog.Logger) SelectionService {
	return &selectionServiceImpl{
		selections: selections,
		classes:    classes,
		logger:     logger,
	}
}

// AddToCart records the caller's intent to enroll in an approved class
func (s *selectionServiceImpl) AddToCart(ctx context.Context, caller appauth.Identity, classID int64) (*models.Selection, error) {
	if err := validateClassID(classID); err != nil {
		return nil, err
	}

	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.Status != models.ClassStatusApproved {
		return nil, apperrors.ErrClassNotApproved
	}

	selection := &models.Selection{
		StudentEmail: normalizeEmail(caller.Email),
		ClassID:      classID,
	}
	if err := s.selections.Create(ctx, selection); err != nil {
		return nil, err
	}
	selection.Class = class

	s.logger.Debug().Int64("selectionID", selection.ID).Int64("classID", classID).Msg("Class added to cart")
	return selection, nil
}

// ListCart returns the cart of email; only its owner and admins may read it
func (s *selectionServiceImpl) ListCart(ctx context.Context, caller appauth.Identity, email string) ([]*models.Selection, error) {
	if email == "" {
		email = caller.Email
	}
	if err := appauth.ValidateSelfOrAdmin(caller, email); err != nil {
		return nil, err
	}
	return s.selections.ListByStudent(ctx, normalizeEmail(email))
}

// RemoveFromCart deletes a cart entry owned by the caller, or any entry for admins
func (s *selectionServiceImpl) RemoveFromCart(ctx context.Context, caller appauth.Identity, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: selection ID must be positive", apperrors.ErrValidationFailed)
	}

	selection, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := appauth.ValidateSelfOrAdmin(caller, selection.StudentEmail); err != nil {
		return err
	}
	return s.selections.Delete(ctx, id)
}
