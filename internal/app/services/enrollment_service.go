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

// EnrollmentService turns confirmed payments into enrollments
type EnrollmentService interface {
	ConfirmPayment(ctx context.Context, caller appauth.Identity, queryClassID int64, req dto.PaymentConfirmationRequest) (*models.EnrollmentResult, error)
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollments EnrollmentStore
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollments EnrollmentStore, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollments: enrollments,
		logger:      logger,
	}
}

// ConfirmPayment records the caller's payment for a cart entry. The class id from the
// query string wins; a different class id in the body is rejected.
func (s *enrollmentServiceImpl) ConfirmPayment(ctx context.Context, caller appauth.Identity, queryClassID int64, req dto.PaymentConfirmationRequest) (*models.EnrollmentResult, error) {
	classID := queryClassID
	switch {
	case classID > 0 && req.ClassID > 0 && req.ClassID != classID:
		return nil, apperrors.NewBadRequestError("classId in the query does not match the body")
	case classID <= 0:
		classID = req.ClassID
	}
	if classID <= 0 {
		return nil, fmt.Errorf("%w: classId is required", apperrors.ErrValidationFailed)
	}
	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: selection id is required", apperrors.ErrValidationFailed)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidationFailed)
	}

	student := normalizeEmail(caller.Email)
	if req.Email != "" && normalizeEmail(req.Email) != student {
		return nil, apperrors.NewForbiddenError("payments can only be recorded for yourself")
	}

	result, err := s.enrollments.Enroll(ctx, models.Enrollment{
		SelectionID:     req.ID,
		ClassID:         classID,
		StudentEmail:    student,
		InstructorEmail: normalizeEmail(req.InstructorEmail),
		ClassName:       strings.TrimSpace(req.ClassName),
		Amount:          req.Price,
		TransactionID:   strings.TrimSpace(req.TransactionID),
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("selectionID", req.ID).
			Int64("classID", classID).
			Str("email", student).
			Msg("Enrollment failed")
		return nil, err
	}

	event := s.logger.Info()
	if result.Replayed {
		event = s.logger.Debug()
	}
	event.Int64("selectionID", req.ID).
		Int64("classID", classID).
		Str("email", student).
		Bool("replayed", result.Replayed).
		Msg("Payment confirmed")
	return result, nil
}
