package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/sportfit/internal/app/auth"
	"github.com/yigit/sportfit/internal/app/controllers"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/app/services"
	"github.com/yigit/sportfit/internal/middleware"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	pkgauth "github.com/yigit/sportfit/internal/pkg/auth"
)

type memUsers struct {
	users []*models.User
}

func (m *memUsers) Create(_ context.Context, user *models.User) (int64, error) {
	for _, u := range m.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	stored := *user
	stored.ID = int64(len(m.users) + 1)
	m.users = append(m.users, &stored)
	return stored.ID, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memUsers) List(_ context.Context) ([]*models.User, error) { return m.users, nil }

func (m *memUsers) GetRoleByEmail(_ context.Context, email string) (models.RoleType, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u.Role, nil
		}
	}
	return "", nil
}

func (m *memUsers) UpdateRole(_ context.Context, id int64, role models.RoleType) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			u.Role = role
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type memClasses struct {
	classes []*models.ClassOffering
}

func (m *memClasses) Create(_ context.Context, _ *models.ClassOffering) error { return nil }

func (m *memClasses) GetByID(_ context.Context, id int64) (*models.ClassOffering, error) {
	for _, c := range m.classes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrClassNotFound
}

func (m *memClasses) List(_ context.Context, filter models.ClassFilter) ([]*models.ClassOffering, error) {
	var out []*models.ClassOffering
	for _, c := range m.classes {
		if len(filter.Statuses) == 0 || c.Status == filter.Statuses[0] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClasses) Update(_ context.Context, _ int64, _ models.ClassUpdate) (*models.ClassOffering, error) {
	return nil, apperrors.ErrClassNotFound
}

func (m *memClasses) Delete(_ context.Context, _ int64) error { return apperrors.ErrClassNotFound }

func (m *memClasses) SetStatus(_ context.Context, id int64, _, to models.ClassStatus) (*models.ClassOffering, error) {
	c, err := m.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	c.Status = to
	return c, nil
}

func (m *memClasses) SetFeedback(_ context.Context, _ int64, _ string) (*models.ClassOffering, error) {
	return nil, apperrors.ErrClassNotFound
}

func (m *memClasses) ReconcileSeats(_ context.Context) (int64, error) { return 0, nil }

type testServer struct {
	router  *gin.Engine
	users   *memUsers
	classes *memClasses
	jwt     *pkgauth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()

	users := &memUsers{}
	classes := &memClasses{classes: []*models.ClassOffering{
		{ID: 1, ClassName: "Yoga", Status: models.ClassStatusApproved, TotalEnrolled: 3},
		{ID: 2, ClassName: "Boxing", Status: models.ClassStatusPending},
	}}
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "routes-secret", AccessTokenExp: time.Hour})

	userService := services.NewUserService(users, nil, logger)
	classService := services.NewClassService(classes, services.ClassLifecycle{AllowReversal: true}, logger)

	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:       controllers.NewAuthController(services.NewAuthService(users, jwtService, logger)),
		User:       controllers.NewUserController(userService),
		Instructor: controllers.NewInstructorController(nil),
		Class:      controllers.NewClassController(classService),
		Selection:  controllers.NewSelectionController(nil),
		Payment:    controllers.NewPaymentController(nil, nil),
		Health:     controllers.NewHealthController(nil),
	}, middleware.NewAuthMiddleware(appauth.NewGuard(jwtService, users, logger)))

	return &testServer{router: router, users: users, classes: classes, jwt: jwtService}
}

func (s *testServer) request(t *testing.T, method, path, email string, body interface{}) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		token, _, err := s.jwt.GenerateToken(pkgauth.Identity{Email: email})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestApprovedCatalogIsPublicButAllClassesIsNot(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.request(t, http.MethodGet, "/allApprovedClass", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	classes, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, classes, 1)
	assert.Equal(t, "approved", classes[0].(map[string]interface{})["status"])

	w, _ = s.request(t, http.MethodGet, "/allClass", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUserTwice(t *testing.T) {
	s := newTestServer(t)
	body := dto.CreateUserRequest{Email: "jane@example.com", Name: "Jane"}

	w, resp := s.request(t, http.MethodPost, "/users", "", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)

	w, resp = s.request(t, http.MethodPost, "/users", "", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user already exist", resp.Message)

	assert.Len(t, s.users.users, 1)
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.request(t, http.MethodPost, "/users", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Empty(t, s.users.users)
}

func TestStudentCannotApprove(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.request(t, http.MethodPost, "/users", "", dto.CreateUserRequest{Email: "student@example.com"})

	w, _ := s.request(t, http.MethodPatch, "/allClass/approved/2", "student@example.com", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, models.ClassStatusPending, s.classes.classes[1].Status)
}

func TestAdminApprovesThenStudentSeesClass(t *testing.T) {
	s := newTestServer(t)
	s.users.users = append(s.users.users, &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin})

	w, resp := s.request(t, http.MethodPatch, "/allClass/approved/2", "admin@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", resp.Data.(map[string]interface{})["status"])

	_, resp = s.request(t, http.MethodGet, "/allApprovedClass", "", nil)
	assert.Len(t, resp.Data.([]interface{}), 2)

	w, _ = s.request(t, http.MethodPatch, "/allClass/approved/abc", "admin@example.com", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateClassRejectsZeroSeats(t *testing.T) {
	s := newTestServer(t)
	s.users.users = append(s.users.users, &models.User{ID: 1, Email: "coach@example.com", Role: models.RoleInstructor})

	w, resp := s.request(t, http.MethodPatch, "/update/class/1", "coach@example.com", map[string]int{"available_seats": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
}

func TestIssueTokenForRegisteredUser(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.request(t, http.MethodPost, "/users", "", dto.CreateUserRequest{Email: "jane@example.com"})

	w, resp := s.request(t, http.MethodPost, "/jwt", "", dto.TokenRequest{Email: "jane@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Bearer", data["tokenType"])
	assert.NotEmpty(t, data["token"])

	w, _ = s.request(t, http.MethodPost, "/jwt", "", dto.TokenRequest{Email: "ghost@example.com"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, resp := s.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp.Data.(map[string]interface{})["status"])
}
