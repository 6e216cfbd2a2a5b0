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

var commentColumns = []string{"id", "post_id", "user_id", "content", "parent_comment_id", "created_at", "updated_at"}

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

func scanComment(row scanner) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.ParentCommentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	sql, args, err := psql.Insert("comments").
		Columns("post_id", "user_id", "content", "parent_comment_id").
		Values(comment.PostID, comment.UserID, comment.Content, comment.ParentCommentID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return comment.ID, nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := psql.Select(commentColumns...).From("comments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	c, err := scanComment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return c, nil
}

// ListByPost retrieves comments of a post, oldest first
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64, offset, limit uint64) ([]models.Comment, error) {
	sql, args, err := psql.Select(commentColumns...).From("comments").
		Where(squirrel.Eq{"post_id": postID}).
		OrderBy("created_at ASC", "id ASC").
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

	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// CountByPost counts the comments of a post
func (r *CommentRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM comments WHERE post_id = $1", postID).Scan(&total); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return total, nil
}

// Delete removes a comment and its likes
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM likes WHERE comment_id = $1", id); err != nil {
			return fmt.Errorf("error deleting likes: %w", err)
		}

		result, err := tx.Exec(ctx, "DELETE FROM comments WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("error deleting comment: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrCommentNotFound
		}
		return nil
	})
}
