package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/logger"
)

// --- Central Error Handling ---

// HandleAPIError maps err to a status code and error envelope and aborts the request
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" && detail.Details == nil {
		detail.WithDetails(custom.Message)
	}

	var stepErr *apperrors.StepError
	if errors.As(err, &stepErr) {
		detail.WithDetails(gin.H{"step": stepErr.Step, "reason": stepErr.Err.Error()})
	}

	if status >= http.StatusInternalServerError {
		detail.WithSeverity(dto.ErrorSeverityCritical)
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
	}

	c.AbortWithStatusJSON(status, dto.NewFailureResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	var verrs validator.ValidationErrors

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound, apperrors.ErrClassNotFound, apperrors.ErrSelectionNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundMessage(err))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token").
			WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.As(err, &verrs):
		return http.StatusBadRequest, dto.HandleValidationError(err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Bad request")
	case errors.Is(err, apperrors.ErrSeatsExhausted):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeSeatsExhausted, "No seats available")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeInvalidTransition, "Invalid class status transition").
			WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrAlreadySelected):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Class already selected")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrClassNotApproved):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Class is not approved")
	case errors.Is(err, apperrors.ErrCapacityBelowUsage):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Capacity is lower than current enrollment")
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflict")
	case errors.Is(err, apperrors.ErrExternalService):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Payment processor error")
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeServiceUnavailable, "Service unavailable")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, apperrors.ErrClassNotFound):
		return "Class not found"
	case errors.Is(err, apperrors.ErrSelectionNotFound):
		return "Selected class not found"
	default:
		return "Resource not found"
	}
}
