// Package postgres implements the repositories on pgx with squirrel-built SQL.
package postgres

import (
	"github.com/Masterminds/squirrel"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql builds statements with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *repositories.Repositories {
	return &repositories.Repositories{
		Applications:  NewApplicationRepository(db),
		Posts:         NewPostRepository(db),
		Comments:      NewCommentRepository(db),
		Likes:         NewLikeRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}
