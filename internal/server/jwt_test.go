package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulj/polypost/internal/config"
	"github.com/rahulj/polypost/internal/server/middleware"
)

func newTestJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          secret,
		Issuer:          "polypost",
		ExpirationHours: 1,
	})
}

func TestJWTRoundTrip(t *testing.T) {
	svc := newTestJWTService("round-trip-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{middleware.ScopePublish})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID())
	assert.Equal(t, "polypost", claims.Issuer)
	assert.True(t, claims.Can(middleware.ScopePublish))
	assert.False(t, claims.Can(middleware.ScopeAnalytics))
}

func TestJWTEmptyToken(t *testing.T) {
	svc := newTestJWTService("secret")

	_, err := svc.ValidateToken("")
	require.Error(t, err)
}

func TestJWTMalformedToken(t *testing.T) {
	svc := newTestJWTService("secret")

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	userID := uuid.New()
	token, err := newTestJWTService("secret-a").GenerateToken(userID, nil)
	require.NoError(t, err)

	_, err = newTestJWTService("secret-b").ValidateToken(token)
	require.Error(t, err)
}

func TestJWTWrongIssuer(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{
		Secret:          "issuer-secret",
		Issuer:          "someone-else",
		ExpirationHours: 1,
	})
	token, err := svc.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	_, err = newTestJWTService("issuer-secret").ValidateToken(token)
	require.Error(t, err)
}

func TestJWTExpiredToken(t *testing.T) {
	secret := "expiry-secret"
	claims := &Claims{
		User: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "polypost",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = newTestJWTService(secret).ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTValidatorAdapter(t *testing.T) {
	svc := newTestJWTService("adapter-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{middleware.ScopeAnalytics})
	require.NoError(t, err)

	principal, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID())
	assert.True(t, principal.Can(middleware.ScopeAnalytics))
}
