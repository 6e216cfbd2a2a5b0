package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: exp, TokenIssuer: "interviewhub"})
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newTestJWT(time.Hour)

	token, expiresIn, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestJWT_RejectsExpiredAndForeignTokens(t *testing.T) {
	expired, _, err := newTestJWT(-time.Minute).GenerateAccessToken("admin")
	require.NoError(t, err)
	_, err = newTestJWT(time.Hour).ValidateToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "interviewhub"})
	foreign, _, err := other.GenerateAccessToken("admin")
	require.NoError(t, err)
	_, err = newTestJWT(time.Hour).ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = newTestJWT(time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ExtractBearerToken("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPassword(string(hash), "s3cret"))
	assert.False(t, CheckPassword(string(hash), "wrong"))
}
