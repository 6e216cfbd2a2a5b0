package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/db"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var postColumns = []string{
	"id", "title", "content", "user_id", "is_sticky", "is_featured", "comment_count", "created_at", "updated_at",
}

// PostRepository handles database operations for forum posts
type PostRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row scanner) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.IsSticky, &p.IsFeatured,
		&p.CommentCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	sql, args, err := psql.Insert("posts").
		Columns("title", "content", "user_id", "is_sticky", "is_featured").
		Values(post.Title, post.Content, post.UserID, post.IsSticky, post.IsFeatured).
		Suffix("RETURNING id, comment_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&post.ID, &post.CommentCount, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return post.ID, nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	sql, args, err := psql.Select(postColumns...).From("posts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return post, nil
}

// List retrieves posts with sticky posts first, then featured, then newest
func (r *PostRepository) List(ctx context.Context, offset, limit uint64) ([]models.Post, error) {
	sql, args, err := psql.Select(postColumns...).From("posts").
		OrderBy("is_sticky DESC", "is_featured DESC", "created_at DESC", "id DESC").
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

	posts := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Count counts all posts
func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts").Scan(&total); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return total, nil
}

func (r *PostRepository) toggleColumn(ctx context.Context, id int64, column string) (*models.Post, error) {
	sql, args, err := psql.Update("posts").
		Set(column, squirrel.Expr("NOT "+column)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(postColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	post, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return post, nil
}

// ToggleSticky flips the sticky flag
func (r *PostRepository) ToggleSticky(ctx context.Context, id int64) (*models.Post, error) {
	return r.toggleColumn(ctx, id, "is_sticky")
}

// ToggleFeatured flips the featured flag
func (r *PostRepository) ToggleFeatured(ctx context.Context, id int64) (*models.Post, error) {
	return r.toggleColumn(ctx, id, "is_featured")
}

// Delete removes a post, its comments and every like on either
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM likes WHERE post_id = $1
			    OR comment_id IN (SELECT id FROM comments WHERE post_id = $1)`, id); err != nil {
			return fmt.Errorf("error deleting likes: %w", err)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM comments WHERE post_id = $1", id); err != nil {
			return fmt.Errorf("error deleting comments: %w", err)
		}

		result, err := tx.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("error deleting post: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrPostNotFound
		}
		return nil
	})
}

// RecountComments recomputes comment_count while holding the post row lock
func (r *PostRepository) RecountComments(ctx context.Context, postID int64) (int, error) {
	var count int
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockRow(ctx, tx, "posts", postID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrPostNotFound
			}
			return err
		}

		return tx.QueryRow(ctx,
			`UPDATE posts
			    SET comment_count = (SELECT COUNT(*) FROM comments WHERE post_id = $1),
			        updated_at = NOW()
			  WHERE id = $1
			RETURNING comment_count`, postID).Scan(&count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// lockRow takes a row lock on table.id inside tx. It returns pgx.ErrNoRows when the row is absent.
func lockRow(ctx context.Context, tx pgx.Tx, table string, id int64) error {
	sql, args, err := psql.Select("id").From(table).Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	var locked int64
	return tx.QueryRow(ctx, sql, args...).Scan(&locked)
}
