package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/sportfit/internal/app/auth"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	pkgauth "github.com/yigit/sportfit/internal/pkg/auth"
)

const testSecret = "middleware-secret"

type roleTable map[string]models.RoleType

func (r roleTable) GetRoleByEmail(_ context.Context, email string) (models.RoleType, error) {
	return r[email], nil
}

func newTestRouter(t *testing.T, handlerCalls *int) (*gin.Engine, *pkgauth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: testSecret, AccessTokenExp: time.Hour})
	roles := roleTable{"coach@example.com": models.RoleInstructor, "admin@example.com": models.RoleAdmin}
	auth := NewAuthMiddleware(appauth.NewGuard(jwtService, roles, zerolog.Nop()))

	handler := func(c *gin.Context) {
		*handlerCalls++
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"email": id.Email, "role": id.Role}, ""))
	}

	r := gin.New()
	r.GET("/public", handler)
	r.GET("/private", auth.Authenticated(), handler)
	r.POST("/instructor", auth.RequireInstructor(), handler)
	r.GET("/admin", auth.RequireAdmin(), handler)
	return r, jwtService
}

func tokenFor(t *testing.T, svc *pkgauth.JWTService, email string) string {
	t.Helper()
	token, _, err := svc.GenerateToken(pkgauth.Identity{Email: email})
	require.NoError(t, err)
	return token
}

func expiredToken(t *testing.T, email string) string {
	t.Helper()
	past := time.Now().Add(-2 * time.Hour)
	claims := &pkgauth.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestPublicRouteNeedsNoToken(t *testing.T) {
	calls := 0
	r, _ := newTestRouter(t, &calls)

	w := do(r, http.MethodGet, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)
}

func TestMissingOrBadTokenIsUnauthorized(t *testing.T) {
	calls := 0
	r, _ := newTestRouter(t, &calls)

	for _, path := range []string{"/private", "/admin"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))

		w = do(r, http.MethodGet, path, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, dto.ErrorCodeInvalidToken, errorCode(t, w))
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Zero(t, calls)
}

func TestExpiredTokenIsUnauthorized(t *testing.T) {
	calls := 0
	r, _ := newTestRouter(t, &calls)

	w := do(r, http.MethodGet, "/private", expiredToken(t, "student@example.com"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeExpiredToken, errorCode(t, w))

	w = do(r, http.MethodPost, "/instructor", expiredToken(t, "coach@example.com"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, calls)
}

func TestStudentOnInstructorGateIsForbidden(t *testing.T) {
	calls := 0
	r, svc := newTestRouter(t, &calls)

	w := do(r, http.MethodPost, "/instructor", tokenFor(t, svc, "student@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeForbidden, errorCode(t, w))
	assert.Zero(t, calls)
}

func TestRoleGatesPassMatchingRole(t *testing.T) {
	calls := 0
	r, svc := newTestRouter(t, &calls)

	w := do(r, http.MethodPost, "/instructor", tokenFor(t, svc, "coach@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/admin", tokenFor(t, svc, "admin@example.com"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/admin", tokenFor(t, svc, "coach@example.com"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Equal(t, 2, calls)
}

func TestHandleAPIErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrClassNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrSelectionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.NewBadRequestError("mismatch"), http.StatusBadRequest, dto.ErrorCodeResourceInvalid},
		{apperrors.ErrAlreadySelected, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.NewStepError(models.StepClassSeats, apperrors.ErrSeatsExhausted), http.StatusConflict, dto.ErrorCodeSeatsExhausted},
		{apperrors.ErrInvalidTransition, http.StatusConflict, dto.ErrorCodeInvalidTransition},
		{apperrors.ErrExternalService, http.StatusBadGateway, dto.ErrorCodeExternalServiceError},
		{apperrors.ErrUnavailable, http.StatusServiceUnavailable, dto.ErrorCodeServiceUnavailable},
		{assert.AnError, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
			assert.True(t, c.IsAborted())
		})
	}
}

func TestHandleAPIErrorReportsFailedStep(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/payments", nil)

	HandleAPIError(c, apperrors.NewStepError(models.StepPaymentInsert, apperrors.ErrUnavailable))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StepPaymentInsert, resp.Error.Details["step"])
}
