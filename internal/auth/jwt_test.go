package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "itinerary-api")

	token, err := svc.GenerateToken(42, "traveler@example.com", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "traveler@example.com", claims.Email)
	require.Equal(t, "user", claims.Role)
	require.Equal(t, "itinerary-api", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", "itinerary-api")
	other := NewJWTService("other-secret", "itinerary-api")

	token, err := svc.GenerateToken(1, "a@example.com", "user")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", "itinerary-api")

	claims := Claims{
		UserID: 7,
		Email:  "a@example.com",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "itinerary-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", "itinerary-api")

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	svc := NewJWTService("test-secret", "itinerary-api")

	// alg=none style token must be rejected
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	require.Error(t, err)
}
