package middleware

import (
	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/sportfit/internal/app/auth"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

// IdentityKey is the gin context key holding the authenticated appauth.Identity
const IdentityKey = "identity"

// AuthMiddleware adapts the authorization guard to gin
type AuthMiddleware struct {
	guard *appauth.Guard
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(guard *appauth.Guard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// Authenticated requires a valid bearer token
func (m *AuthMiddleware) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// WithRole authenticates the caller and resolves their role without requiring one
func (m *AuthMiddleware) WithRole() gin.HandlerFunc {
	return m.gate(m.guard.ResolveRole())
}

// RequireRole authenticates the caller and requires role
func (m *AuthMiddleware) RequireRole(role models.RoleType) gin.HandlerFunc {
	return m.gate(m.guard.Require(role))
}

// RequireInstructor requires the instructor role
func (m *AuthMiddleware) RequireInstructor() gin.HandlerFunc {
	return m.RequireRole(models.RoleInstructor)
}

// RequireAdmin requires the admin role
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireRole(models.RoleAdmin)
}

func (m *AuthMiddleware) gate(gate appauth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := m.authenticate(c)
		if !ok {
			return
		}

		id, err := gate(c.Request.Context(), id)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(IdentityKey, id)
		c.Next()
	}
}

// authenticate reuses an identity set by an earlier middleware, or validates the header
func (m *AuthMiddleware) authenticate(c *gin.Context) (appauth.Identity, bool) {
	if id, ok := CurrentIdentity(c); ok {
		return id, true
	}

	id, err := m.guard.Authenticate(c.GetHeader("Authorization"))
	if err != nil {
		HandleAPIError(c, err)
		return appauth.Identity{}, false
	}

	c.Set(IdentityKey, id)
	return id, true
}

// CurrentIdentity returns the identity stored by the auth middleware
func CurrentIdentity(c *gin.Context) (appauth.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return appauth.Identity{}, false
	}
	id, ok := value.(appauth.Identity)
	return id, ok
}

// MustIdentity returns the stored identity, writing a 401 response when there is none
func MustIdentity(c *gin.Context) (appauth.Identity, bool) {
	id, ok := CurrentIdentity(c)
	if !ok {
		HandleAPIError(c, apperrors.NewUnauthenticatedError("user information not found"))
		return appauth.Identity{}, false
	}
	return id, true
}
