package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/auth"
	"github.com/rs/zerolog"
)

var errInvalidLogin = &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: "invalid username or password"}

// AdminAuthService checks the single configured admin account and issues session tokens.
type AdminAuthService struct {
	username     string
	passwordHash string
	jwt          *auth.JWTService
	logger       zerolog.Logger
}

// NewAdminAuthService creates a new AdminAuthService. When only a plain
// password is configured it is hashed once here.
func NewAdminAuthService(username, passwordHash, password string, jwt *auth.JWTService, logger zerolog.Logger) (*AdminAuthService, error) {
	if passwordHash == "" && password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("error hashing admin password: %w", err)
		}
		passwordHash = hash
	}
	if username == "" || passwordHash == "" {
		return nil, fmt.Errorf("admin credentials are not configured")
	}

	return &AdminAuthService{
		username:     username,
		passwordHash: passwordHash,
		jwt:          jwt,
		logger:       logger,
	}, nil
}

// Login verifies the admin credentials and returns an access token
func (s *AdminAuthService) Login(_ context.Context, username, password string) (*dto.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := auth.CheckPassword(s.passwordHash, password)
	if !userOK || !passOK {
		s.logger.Warn().Str("username", username).Msg("Failed admin login")
		return nil, errInvalidLogin
	}

	token, expiresIn, err := s.jwt.GenerateAccessToken(s.username)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("Admin logged in")
	return &dto.LoginResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn}, nil
}

// ValidateToken checks an admin session token
func (s *AdminAuthService) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwt.ValidateToken(token)
}
