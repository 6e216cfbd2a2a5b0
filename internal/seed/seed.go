package seed

import (
	"context"
	"fmt"

	appModels "github.com/csecl/interviewhub/internal/app/models"
	appRepos "github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/rs/zerolog"
)

// WelcomeAuthor owns the seeded welcome post.
const WelcomeAuthor = "system"

const (
	welcomeTitle   = "Welcome to the interview forum"
	welcomeContent = "Ask questions about the lab, the interview schedule or the directions here. Administrators pin important threads."
)

// CreateDefaultData creates a sticky welcome post when the forum is empty.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	total, err := repos.Posts.Count(ctx)
	if err != nil {
		return fmt.Errorf("error counting posts: %w", err)
	}
	if total > 0 {
		lgr.Debug().Int64("posts", total).Msg("Forum already has posts, skipping welcome post")
		return nil
	}

	post := &appModels.Post{
		Title:   welcomeTitle,
		Content: welcomeContent,
		UserID:  WelcomeAuthor,
	}
	if _, err := repos.Posts.Create(ctx, post); err != nil {
		return fmt.Errorf("error creating welcome post: %w", err)
	}
	if _, err := repos.Posts.ToggleSticky(ctx, post.ID); err != nil {
		return fmt.Errorf("error pinning welcome post: %w", err)
	}

	lgr.Info().Int64("postId", post.ID).Msg("Welcome post created")
	return nil
}
