package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/db"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var notificationColumns = []string{
	"id", "recipient_user_id", "sender_user_id", "type", "message", "post_id", "comment_id", "is_read", "created_at",
}

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func scanNotification(row scanner) (*models.Notification, error) {
	var n models.Notification
	if err := row.Scan(&n.ID, &n.RecipientUserID, &n.SenderUserID, &n.Type, &n.Message,
		&n.PostID, &n.CommentID, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func insertNotification(n *models.Notification) (string, []any, error) {
	return psql.Insert("notifications").
		Columns("recipient_user_id", "sender_user_id", "type", "message", "post_id", "comment_id").
		Values(n.RecipientUserID, n.SenderUserID, string(n.Type), n.Message, n.PostID, n.CommentID).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
}

// Create inserts a single notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (int64, error) {
	sql, args, err := insertNotification(n)
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return n.ID, nil
}

// CreateBatch inserts all notifications in one transaction
func (r *NotificationRepository) CreateBatch(ctx context.Context, items []*models.Notification) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, n := range items {
			sql, args, err := insertNotification(n)
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}
			if err := tx.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
				return fmt.Errorf("error inserting notification: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// GetByID retrieves a notification by ID
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sql, args, err := psql.Select(notificationColumns...).From("notifications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	n, err := scanNotification(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return n, nil
}

// feedFilter matches notifications addressed to userID plus broadcasts.
func feedFilter(userID string, unreadOnly bool) squirrel.Sqlizer {
	visible := squirrel.Or{
		squirrel.Eq{"recipient_user_id": userID},
		squirrel.Eq{"recipient_user_id": nil},
	}
	if !unreadOnly {
		return visible
	}
	return squirrel.And{visible, squirrel.Eq{"is_read": false}}
}

// ListForUser retrieves the user's feed, newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool, offset, limit uint64) ([]models.Notification, error) {
	sql, args, err := psql.Select(notificationColumns...).From("notifications").
		Where(feedFilter(userID, unreadOnly)).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	items := make([]models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

// CountForUser counts the user's feed
func (r *NotificationRepository) CountForUser(ctx context.Context, userID string, unreadOnly bool) (int64, error) {
	return r.count(ctx, feedFilter(userID, unreadOnly))
}

// CountUnread counts unread notifications addressed to the user. Broadcasts are excluded.
func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, squirrel.Eq{"recipient_user_id": userID, "is_read": false})
}

func (r *NotificationRepository) count(ctx context.Context, where squirrel.Sqlizer) (int64, error) {
	sql, args, err := psql.Select("COUNT(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return total, nil
}

// MarkRead marks a single notification as read. Marking twice is a no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	sql, args, err := psql.Update("notifications").Set("is_read", true).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification addressed to the user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	sql, args, err := psql.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"recipient_user_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected(), nil
}
