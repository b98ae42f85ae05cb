package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dverdin/gymplan-api/internal/config"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

// signTestToken builds a token the way the identity service does.
func signTestToken(t *testing.T, secret string, subject string, role string, issuedAt, expiresAt time.Time) string {
	t.Helper()

	claims := jwtCustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestValidator(t *testing.T) TokenValidator {
	t.Helper()

	validator, err := NewTokenValidator(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	return validator
}

func TestNewTokenValidatorRejectsShortSecret(t *testing.T) {
	_, err := NewTokenValidator(config.AuthConfig{JWTSecret: "tooshort"})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	validator := newTestValidator(t)
	userID := uuid.New()
	now := time.Now()

	t.Run("valid coach token", func(t *testing.T) {
		tokenString := signTestToken(t, testSecret, userID.String(), "Entrenador",
			now, now.Add(time.Hour))

		claims, err := validator.ValidateToken(ctx, tokenString)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, RoleCoach, claims.Role)
	})

	t.Run("valid athlete token", func(t *testing.T) {
		tokenString := signTestToken(t, testSecret, userID.String(), "Atleta",
			now, now.Add(time.Hour))

		claims, err := validator.ValidateToken(ctx, tokenString)
		require.NoError(t, err)
		assert.Equal(t, RoleAthlete, claims.Role)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := validator.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := validator.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signature", func(t *testing.T) {
		tokenString := signTestToken(t, "anothersecretthatisalso32charslng!!", userID.String(),
			"Entrenador", now, now.Add(time.Hour))

		_, err := validator.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		tokenString := signTestToken(t, testSecret, userID.String(), "Entrenador",
			now.Add(-2*time.Hour), now.Add(-time.Hour))

		_, err := validator.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		tokenString := signTestToken(t, testSecret, "coach-42", "Entrenador",
			now, now.Add(time.Hour))

		_, err := validator.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		tokenString := signTestToken(t, testSecret, userID.String(), "Janitor",
			now, now.Add(time.Hour))

		_, err := validator.ValidateToken(ctx, tokenString)
		assert.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleCoach))
	assert.True(t, IsValidRole(RoleAthlete))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole(Role("")))
	assert.False(t, IsValidRole(Role("coach")))
}
