package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParseValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, Claims{
		FullName: "J. Dela Cruz",
		Role:     "technician",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	principal, err := NewParser(testSecret).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, "J. Dela Cruz", principal.FullName)
	assert.Equal(t, model.RoleTechnician, principal.Role)
	assert.True(t, principal.CanMutate())
}

func TestParseWrongSecret(t *testing.T) {
	token := signToken(t, Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "other-secret")

	_, err := NewParser(testSecret).Parse(token)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	token := signToken(t, Claims{
		Role: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	_, err := NewParser(testSecret).Parse(token)
	assert.Error(t, err)
}

func TestParseUnknownRole(t *testing.T) {
	token := signToken(t, Claims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	_, err := NewParser(testSecret).Parse(token)
	assert.Error(t, err)
}
