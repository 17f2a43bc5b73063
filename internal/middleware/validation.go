package middleware

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// BindJSON binds and validates the request body into obj. On failure it writes a
// 400 response listing the failed fields and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		detail := dto.HandleValidationError(err)
		if errors.Is(err, io.EOF) {
			detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request body is required")
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewFailureResponse(detail))
		return false
	}
	return true
}

// ParseIDParam reads a positive integer path parameter. On failure it writes a
// 400 response and returns false.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid "+name))
		return 0, false
	}
	return id, true
}

// ParseOptionalIDQuery reads an optional positive integer query parameter; absent yields 0
func ParseOptionalIDQuery(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid "+name))
		return 0, false
	}
	return id, true
}
