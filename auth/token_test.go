package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milassets/backend/errs"
	"github.com/milassets/backend/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Username: "alice",
		Name:     "Alice Smith",
		Role:     models.RoleCommander,
		Base:     "Alpha",
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice Smith", claims.Name)
	assert.Equal(t, models.RoleCommander, claims.Role)
	assert.Equal(t, "Alpha", claims.Base)

	// 5-day validity window
	require.NotNil(t, claims.ExpiresAt)
	ttl := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenTTL, ttl, float64(time.Minute))
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").Verify(token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(bad)
		assert.ErrorIs(t, err, errs.ErrInvalidToken, "token %q", bad)
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	secret := "test-secret"
	claims := Claims{
		UserID:   7,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-6 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenService(secret).Verify(expired)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestTokenService_RejectsMissingUserID(t *testing.T) {
	secret := "test-secret"
	claims := Claims{
		Username: "nobody",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenService(secret).Verify(token)
	assert.ErrorIs(t, err, errs.ErrInvalidToken)
}
