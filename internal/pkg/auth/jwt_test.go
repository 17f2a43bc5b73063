package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/sportfit/internal/pkg/apperrors"
)

func newTestService(now time.Time) *JWTService {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "sportfit.test"})
	svc.now = func() time.Time { return now }
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	now := time.Now()
	svc := newTestService(now)

	token, expiresIn, err := svc.GenerateToken(Identity{Email: "jane@example.com", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane", claims.Name)
	assert.Equal(t, "sportfit.test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateTokenRequiresEmail(t *testing.T) {
	svc := newTestService(time.Now())
	_, _, err := svc.GenerateToken(Identity{Email: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestValidateTokenExpired(t *testing.T) {
	issued := time.Now().Add(-3 * time.Hour)
	token, _, err := newTestService(issued).GenerateToken(Identity{Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	other := NewJWTService(JWTConfig{SecretKey: "other-secret"})
	token, _, err := other.GenerateToken(Identity{Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		Email: "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateTokenRequiresEmailClaim(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"quoted token", `Bearer "abc"`, "abc", nil},
		{"empty", "", "", ErrMissingToken},
		{"wrong scheme", "Basic abc", "", ErrInvalidFormat},
		{"no token", "Bearer ", "", ErrInvalidFormat},
		{"no separator", "Bearerabc", "", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
