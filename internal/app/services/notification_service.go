package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/csecl/interviewhub/internal/app/auth"
	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/helpers"
	"github.com/csecl/interviewhub/internal/pkg/metrics"
	"github.com/csecl/interviewhub/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// MaxAnnouncementLength bounds announcement text.
const MaxAnnouncementLength = 200

// Publisher pushes stored notifications to live subscribers.
type Publisher interface {
	Publish(n *models.Notification)
}

// nopPublisher is used when live push is disabled.
type nopPublisher struct{}

func (nopPublisher) Publish(*models.Notification) {}

// NotificationService owns the per-user feed: targeted plus broadcast notifications.
type NotificationService struct {
	repo      repositories.NotificationRepository
	authz     *auth.AuthorizationService
	publisher Publisher
	logger    zerolog.Logger
}

// NewNotificationService creates a new NotificationService. A nil publisher disables live push.
func NewNotificationService(repo repositories.NotificationRepository, publisher Publisher, logger zerolog.Logger) *NotificationService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &NotificationService{
		repo:      repo,
		authz:     auth.NewAuthorizationService(repo),
		publisher: publisher,
		logger:    logger,
	}
}

// Notify stores a single notification and pushes it to live subscribers.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if !n.Type.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown notification type %q", n.Type))
	}
	if _, err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	metrics.ObserveNotifications(string(n.Type), 1)
	s.publisher.Publish(n)
	return nil
}

// List returns a page of the user's feed, newest first. Out-of-range pages
// clamp to the nearest valid page. A user without identity has an empty feed.
func (s *NotificationService) List(ctx context.Context, userID string, page, size int, unreadOnly bool) ([]models.Notification, helpers.Page, error) {
	if strings.TrimSpace(userID) == "" {
		return []models.Notification{}, helpers.ClampPage(page, size, 0), nil
	}

	total, err := s.repo.CountForUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error counting notifications: %w", err)
	}

	p := helpers.ClampPage(page, size, total)
	items, err := s.repo.ListForUser(ctx, userID, unreadOnly, p.Offset(), p.Limit())
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error listing notifications: %w", err)
	}
	return items, p, nil
}

// UnreadCount counts the user's unread targeted notifications. Broadcasts never count.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, nil
	}

	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marks one notification read. Only its exact recipient may do so,
// which means broadcasts can never be marked read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID int64, userID string) error {
	n, err := s.authz.ValidateNotificationRecipient(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if n.IsRead {
		return nil
	}
	return s.repo.MarkRead(ctx, notificationID)
}

// MarkAllRead marks every unread targeted notification of the user read and
// returns how many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if err := auth.RequireIdentity(userID); err != nil {
		return 0, err
	}

	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return updated, nil
}

// CreateAnnouncement writes one broadcast when recipients is empty, otherwise
// one targeted announcement per listed id. Duplicate ids yield duplicate rows.
func (s *NotificationService) CreateAnnouncement(ctx context.Context, message string, recipients []string, sender string) (int, error) {
	message, err := validation.RequireText("message", message, MaxAnnouncementLength)
	if err != nil {
		return 0, apperrors.NewValidationError(err.Error())
	}

	var senderID *string
	if sender != "" {
		senderID = models.StringPtr(sender)
	}

	var items []*models.Notification
	if len(recipients) == 0 {
		items = append(items, &models.Notification{
			SenderUserID: senderID,
			Type:         models.NotificationAnnouncement,
			Message:      message,
		})
	} else {
		for _, r := range recipients {
			r = strings.TrimSpace(r)
			if r == "" {
				return 0, apperrors.NewValidationError("recipient ids must not be blank")
			}
			items = append(items, &models.Notification{
				RecipientUserID: models.StringPtr(r),
				SenderUserID:    senderID,
				Type:            models.NotificationAnnouncement,
				Message:         message,
			})
		}
	}

	created, err := s.repo.CreateBatch(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}

	metrics.ObserveNotifications(string(models.NotificationAnnouncement), created)
	for _, n := range items {
		s.publisher.Publish(n)
	}

	s.logger.Info().
		Int("created", created).
		Bool("broadcast", len(recipients) == 0).
		Msg("Announcement published")
	return created, nil
}
