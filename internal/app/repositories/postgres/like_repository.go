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

// LikeRepository handles database operations for likes
type LikeRepository struct {
	db *pgxpool.Pool
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{db: db}
}

// likeTable resolves the target table, the like column and the not-found error of a target kind.
func likeTable(target models.LikeTarget) (table, column string, notFound error, err error) {
	switch target {
	case models.LikeTargetPost:
		return "posts", "post_id", apperrors.ErrPostNotFound, nil
	case models.LikeTargetComment:
		return "comments", "comment_id", apperrors.ErrCommentNotFound, nil
	}
	return "", "", nil, apperrors.NewBadRequestError("unknown like target")
}

// Toggle flips the user's like on the target. The target row stays locked for
// the whole transaction, so concurrent toggles on one target run one at a time.
func (r *LikeRepository) Toggle(ctx context.Context, userID string, target models.LikeTarget, targetID int64) (bool, error) {
	table, column, notFound, err := likeTable(target)
	if err != nil {
		return false, err
	}

	var liked bool
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockRow(ctx, tx, table, targetID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return notFound
			}
			return err
		}

		sql, args, err := psql.Delete("likes").
			Where(squirrel.Eq{"user_id": userID, column: targetID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		result, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error deleting like: %w", err)
		}
		if result.RowsAffected() > 0 {
			liked = false
			return nil
		}

		sql, args, err = psql.Insert("likes").
			Columns("user_id", column).
			Values(userID, targetID).
			Suffix("ON CONFLICT DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error inserting like: %w", err)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// Exists reports whether the user currently likes the target
func (r *LikeRepository) Exists(ctx context.Context, userID string, target models.LikeTarget, targetID int64) (bool, error) {
	_, column, _, err := likeTable(target)
	if err != nil {
		return false, err
	}

	sql, args, err := psql.Select("1").From("likes").
		Where(squirrel.Eq{"user_id": userID, column: targetID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return exists, nil
}

// Count counts the likes on a target
func (r *LikeRepository) Count(ctx context.Context, target models.LikeTarget, targetID int64) (int64, error) {
	_, column, _, err := likeTable(target)
	if err != nil {
		return 0, err
	}

	sql, args, err := psql.Select("COUNT(*)").From("likes").Where(squirrel.Eq{column: targetID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return total, nil
}
