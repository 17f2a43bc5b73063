package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/sportfit/internal/app/models"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	pkgauth "github.com/yigit/sportfit/internal/pkg/auth"
)

// Identity is the authenticated caller carried from gate to gate and into handlers
type Identity struct {
	Email string
	Name  string
	Role  models.RoleType
	// RoleResolved is set once the role has been looked up in the user store
	RoleResolved bool
}

// IsAdmin reports whether the resolved role is admin
func (i Identity) IsAdmin() bool {
	return i.RoleResolved && i.Role == models.RoleAdmin
}

// Gate checks a capability. It returns the identity to forward, possibly enriched,
// or an error that stops the chain.
type Gate func(ctx context.Context, id Identity) (Identity, error)

// Chain composes gates left to right, stopping at the first error
func Chain(gates ...Gate) Gate {
	return func(ctx context.Context, id Identity) (Identity, error) {
		var err error
		for _, gate := range gates {
			if id, err = gate(ctx, id); err != nil {
				return Identity{}, err
			}
		}
		return id, nil
	}
}

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*pkgauth.Claims, error)
}

// RoleResolver looks up the stored role of a user; unknown users have no role
type RoleResolver interface {
	GetRoleByEmail(ctx context.Context, email string) (models.RoleType, error)
}

// Guard builds the authentication and role gates used by the HTTP layer
type Guard struct {
	tokens TokenValidator
	roles  RoleResolver
	logger zerolog.Logger
}

// NewGuard creates a Guard
func NewGuard(tokens TokenValidator, roles RoleResolver, logger zerolog.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		roles:  roles,
		logger: logger.With().Str("component", "guard").Logger(),
	}
}

// Authenticate validates an Authorization header value and returns the caller
func (g *Guard) Authenticate(authHeader string) (Identity, error) {
	token, err := pkgauth.ExtractBearerToken(authHeader)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return Identity{}, apperrors.NewUnauthenticatedError("authorization header missing")
		}
		return Identity{}, err
	}

	claims, err := g.tokens.ValidateToken(token)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Email: strings.ToLower(claims.Email),
		Name:  claims.Name,
	}, nil
}

// ResolveRole fills in the caller's role from the user store
func (g *Guard) ResolveRole() Gate {
	return func(ctx context.Context, id Identity) (Identity, error) {
		if id.RoleResolved {
			return id, nil
		}
		if id.Email == "" {
			return Identity{}, apperrors.NewUnauthenticatedError("no authenticated caller")
		}

		role, err := g.roles.GetRoleByEmail(ctx, id.Email)
		if err != nil {
			g.logger.Error().Err(err).Str("email", id.Email).Msg("Role lookup failed")
			if errors.Is(err, apperrors.ErrUnavailable) {
				return Identity{}, err
			}
			return Identity{}, fmt.Errorf("%w: role lookup: %v", apperrors.ErrUnavailable, err)
		}

		id.Role = role
		id.RoleResolved = true
		return id, nil
	}
}

// RequireRole passes only callers whose resolved role equals role.
// An unset role counts as student.
func RequireRole(role models.RoleType) Gate {
	return func(_ context.Context, id Identity) (Identity, error) {
		if !id.RoleResolved {
			return Identity{}, apperrors.NewForbiddenError("role has not been resolved")
		}
		if id.Role.Effective() != role {
			return Identity{}, apperrors.NewForbiddenError(fmt.Sprintf("%s role required", role))
		}
		return id, nil
	}
}

// Require resolves the caller's role and checks it
func (g *Guard) Require(role models.RoleType) Gate {
	return Chain(g.ResolveRole(), RequireRole(role))
}

// ValidateSelfOrAdmin allows a caller to act on their own records, and admins on anyone's
func ValidateSelfOrAdmin(caller Identity, email string) error {
	if strings.EqualFold(caller.Email, email) || caller.IsAdmin() {
		return nil
	}
	return apperrors.NewForbiddenError("you can only access your own records")
}

// ValidateClassOwnership allows the instructor who created the class, and admins
func ValidateClassOwnership(caller Identity, class *models.ClassOffering) error {
	if class == nil {
		return apperrors.ErrClassNotFound
	}
	if strings.EqualFold(caller.Email, class.InstructorEmail) || caller.IsAdmin() {
		return nil
	}
	return apperrors.NewForbiddenError("you are not the instructor of this class")
}
