package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundtrip(t *testing.T) {
	SetSecret("0123456789abcdef0123456789abcdef")

	token, err := Sign("user-1", "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "admin", claims.Role)
	require.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	SetSecret("0123456789abcdef0123456789abcdef")
	token, err := Sign("user-1", "user", time.Hour)
	require.NoError(t, err)

	SetSecret("ffffffffffffffffffffffffffffffff")
	_, err = Parse(token)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	SetSecret("0123456789abcdef0123456789abcdef")

	claims := Claims{
		UserID: "user-1",
		Role:   "user",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).
		SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	_, err = Parse(token)
	require.Error(t, err)
}

func TestParseRejectsWrongSigningMethod(t *testing.T) {
	SetSecret("0123456789abcdef0123456789abcdef")

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: "user-1"}).
		SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(token)
	require.Error(t, err)
}
