package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "abc123", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, "abc123", claims.SessionID)
	require.Equal(t, "abc123", claims.Subject)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "abc123", time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken("other-secret", token)
	require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "abc123", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateSessionToken(testSecret, token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ValidateSessionToken(testSecret, "not-a-jwt")
	require.Error(t, err)
}

func TestSessionToken_MissingSessionID(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "", time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken(testSecret, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
