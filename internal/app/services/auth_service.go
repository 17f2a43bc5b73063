package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/sportfit/internal/app/models/dto"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
	"github.com/yigit/sportfit/internal/pkg/auth"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateToken(identity auth.Identity) (string, int64, error)
}

// AuthService issues access tokens
type AuthService interface {
	IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	users  UserStore
	tokens TokenIssuer
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens TokenIssuer, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// IssueToken signs a token for a registered user. Accounts with a stored password must
// present it; accounts without one are trusted on assertion.
func (s *authServiceImpl) IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", email).Msg("Token requested for unknown user")
			return nil, fmt.Errorf("%w: user is not registered", apperrors.ErrInvalidCredentials)
		}
		return nil, err
	}

	if user.HasPassword() {
		if req.Password == "" || !auth.CheckPassword(*user.Password, req.Password) {
			s.logger.Info().Str("email", email).Msg("Token request with wrong password")
			return nil, apperrors.ErrInvalidCredentials
		}
	} else {
		s.logger.Warn().Str("email", email).Msg("Issuing token on asserted identity, account has no password")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = user.Name
	}

	token, expiresIn, err := s.tokens.GenerateToken(auth.Identity{Email: user.Email, Name: name})
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Failed to sign token")
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
