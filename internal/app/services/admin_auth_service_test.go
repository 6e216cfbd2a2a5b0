package services

import (
	"context"
	"testing"
	"time"

	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "interviewhub"})
	svc, err := NewAdminAuthService("admin", string(hash), "", jwtService, zerolog.Nop())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestNewAdminAuthService_RequiresCredentials(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour})
	_, err := NewAdminAuthService("admin", "", "", jwtService, zerolog.Nop())
	assert.Error(t, err)
}
