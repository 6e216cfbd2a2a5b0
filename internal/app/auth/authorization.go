package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/logger"
)

// ErrNotRecipient is returned when a user acts on a notification that is not addressed to them.
var ErrNotRecipient = apperrors.NewForbiddenError("this notification is not addressed to you")

// AuthorizationService answers ownership questions about client-owned records.
// Client identities are opaque and never authenticated; they only partition data.
type AuthorizationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(notificationRepo repositories.NotificationRepository) *AuthorizationService {
	return &AuthorizationService{notificationRepo: notificationRepo}
}

// RequireIdentity fails with ErrMissingIdentity for a blank identity.
func RequireIdentity(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.ErrMissingIdentity
	}
	return nil
}

// ValidateNotificationRecipient loads the notification and checks it is
// addressed to exactly userID. Broadcasts belong to nobody and always fail.
func (s *AuthorizationService) ValidateNotificationRecipient(ctx context.Context, notificationID int64, userID string) (*models.Notification, error) {
	if err := RequireIdentity(userID); err != nil {
		return nil, err
	}

	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Int64("notificationID", notificationID).Msg("Error getting notification by ID")
		return nil, fmt.Errorf("failed to check notification recipient: %w", err)
	}

	if !n.IsAddressedTo(userID) {
		return nil, ErrNotRecipient
	}
	return n, nil
}
