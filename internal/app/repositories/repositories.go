package repositories

import (
	"context"

	"github.com/csecl/interviewhub/internal/app/models"
)

// Lookups of a single record return the matching apperrors NotFound error
// (ErrApplicationNotFound, ErrPostNotFound, ...) when the record is absent.

// ApplicationRepository stores interview applications.
type ApplicationRepository interface {
	// Create fails with apperrors.ErrApplicationAlreadyExists when the number is taken.
	Create(ctx context.Context, app *models.Application) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	GetByNumber(ctx context.Context, number string) (*models.Application, error)
	// List orders by book time, newest first.
	List(ctx context.Context, filter models.ApplicationFilter, offset, limit uint64) ([]models.Application, error)
	Count(ctx context.Context, filter models.ApplicationFilter) (int64, error)
	Update(ctx context.Context, app *models.Application) error
	UpdateScore(ctx context.Context, id int64, value string) error
	UpdateRemark(ctx context.Context, id int64, remark string) error
	Delete(ctx context.Context, id int64) error
}

// PostRepository stores forum posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// List orders sticky first, then featured, then newest.
	List(ctx context.Context, offset, limit uint64) ([]models.Post, error)
	Count(ctx context.Context) (int64, error)
	ToggleSticky(ctx context.Context, id int64) (*models.Post, error)
	ToggleFeatured(ctx context.Context, id int64) (*models.Post, error)
	// Delete removes the post together with its comments and likes.
	Delete(ctx context.Context, id int64) error
	// RecountComments recomputes comment_count from the live comments and
	// returns the stored value. Concurrent recounts of one post serialise.
	RecountComments(ctx context.Context, postID int64) (int, error)
}

// CommentRepository stores comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// ListByPost orders oldest first.
	ListByPost(ctx context.Context, postID int64, offset, limit uint64) ([]models.Comment, error)
	CountByPost(ctx context.Context, postID int64) (int64, error)
	// Delete removes the comment and its likes.
	Delete(ctx context.Context, id int64) error
}

// LikeRepository stores likes.
type LikeRepository interface {
	// Toggle removes the user's like on the target if present, otherwise adds
	// one. It is atomic per (user, target) and returns the resulting state.
	Toggle(ctx context.Context, userID string, target models.LikeTarget, targetID int64) (liked bool, err error)
	Exists(ctx context.Context, userID string, target models.LikeTarget, targetID int64) (bool, error)
	Count(ctx context.Context, target models.LikeTarget, targetID int64) (int64, error)
}

// NotificationRepository stores notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (int64, error)
	// CreateBatch writes all notifications or none and fills in their ids.
	CreateBatch(ctx context.Context, items []*models.Notification) (int, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	// ListForUser returns targeted(userID) plus broadcast notifications, newest first.
	ListForUser(ctx context.Context, userID string, unreadOnly bool, offset, limit uint64) ([]models.Notification, error)
	CountForUser(ctx context.Context, userID string, unreadOnly bool) (int64, error)
	// CountUnread counts targeted unread notifications only.
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Applications  ApplicationRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Notifications NotificationRepository
}
