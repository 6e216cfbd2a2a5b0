package inmemory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepos creates a store and one post owned by user-a.
func newTestRepos(t *testing.T) (*repositories.Repositories, *models.Post) {
	t.Helper()
	repos := NewRepositories()
	post := &models.Post{Title: "Hello", Content: "World", UserID: "user-a"}
	_, err := repos.Posts.Create(context.Background(), post)
	require.NoError(t, err)
	return repos, post
}

func TestPosts_OrderingStickyFeaturedNewest(t *testing.T) {
	repos, first := newTestRepos(t)
	ctx := context.Background()

	second := &models.Post{Title: "second", Content: "c", UserID: "u"}
	third := &models.Post{Title: "third", Content: "c", UserID: "u"}
	_, _ = repos.Posts.Create(ctx, second)
	_, _ = repos.Posts.Create(ctx, third)

	_, err := repos.Posts.ToggleFeatured(ctx, second.ID)
	require.NoError(t, err)
	_, err = repos.Posts.ToggleSticky(ctx, first.ID)
	require.NoError(t, err)

	posts, err := repos.Posts.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	assert.Equal(t, third.ID, posts[2].ID)
}

func TestLikes_ToggleAndIndependentConstraints(t *testing.T) {
	repos, post := newTestRepos(t)
	ctx := context.Background()

	comment := &models.Comment{PostID: post.ID, UserID: "user-b", Content: "hi"}
	_, err := repos.Comments.Create(ctx, comment)
	require.NoError(t, err)

	liked, err := repos.Likes.Toggle(ctx, "user-b", models.LikeTargetPost, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// A comment like never collides with a post like.
	liked, err = repos.Likes.Toggle(ctx, "user-b", models.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repos.Likes.Toggle(ctx, "user-b", models.LikeTargetPost, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	n, _ := repos.Likes.Count(ctx, models.LikeTargetPost, post.ID)
	assert.Zero(t, n)
	n, _ = repos.Likes.Count(ctx, models.LikeTargetComment, comment.ID)
	assert.Equal(t, int64(1), n)

	_, err = repos.Likes.Toggle(ctx, "user-b", models.LikeTargetComment, 9999)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestLikes_ConcurrentTogglesStayConsistent(t *testing.T) {
	repos, post := newTestRepos(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Likes.Toggle(ctx, "user-c", models.LikeTargetPost, post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// An even number of toggles always ends unliked.
	exists, err := repos.Likes.Exists(ctx, "user-c", models.LikeTargetPost, post.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPosts_DeleteCascades(t *testing.T) {
	repos, post := newTestRepos(t)
	ctx := context.Background()

	comment := &models.Comment{PostID: post.ID, UserID: "user-b", Content: "hi"}
	_, _ = repos.Comments.Create(ctx, comment)
	_, _ = repos.Likes.Toggle(ctx, "user-b", models.LikeTargetComment, comment.ID)
	_, _ = repos.Likes.Toggle(ctx, "user-b", models.LikeTargetPost, post.ID)

	require.NoError(t, repos.Posts.Delete(ctx, post.ID))

	_, err := repos.Comments.GetByID(ctx, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
	n, _ := repos.Likes.Count(ctx, models.LikeTargetComment, comment.ID)
	assert.Zero(t, n)

	assert.ErrorIs(t, repos.Posts.Delete(ctx, post.ID), apperrors.ErrPostNotFound)
}

func TestComments_RecountAfterDeletes(t *testing.T) {
	repos, post := newTestRepos(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		c := &models.Comment{PostID: post.ID, UserID: "u", Content: "x"}
		_, err := repos.Comments.Create(ctx, c)
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	require.NoError(t, repos.Comments.Delete(ctx, ids[1]))

	n, err := repos.Posts.RecountComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, _ := repos.Posts.GetByID(ctx, post.ID)
	assert.Equal(t, 2, stored.CommentCount)

	comments, _ := repos.Comments.ListByPost(ctx, post.ID, 0, 10)
	require.Len(t, comments, 2)
	assert.Equal(t, ids[0], comments[0].ID)
	assert.Equal(t, ids[2], comments[1].ID)
}

func TestNotifications_FeedAndUnread(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	_, _ = repos.Notifications.Create(ctx, &models.Notification{RecipientUserID: models.StringPtr("alice"), Type: models.NotificationReply, Message: "r"})
	_, _ = repos.Notifications.Create(ctx, &models.Notification{RecipientUserID: models.StringPtr("bob"), Type: models.NotificationLike, Message: "l"})
	_, _ = repos.Notifications.Create(ctx, &models.Notification{Type: models.NotificationAnnouncement, Message: "all"})

	feed, err := repos.Notifications.ListForUser(ctx, "alice", false, 0, 10)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.True(t, feed[0].IsBroadcast(), "newest first")

	unread, _ := repos.Notifications.CountUnread(ctx, "alice")
	assert.Equal(t, int64(1), unread)

	updated, _ := repos.Notifications.MarkAllRead(ctx, "alice")
	assert.Equal(t, int64(1), updated)
	updated, _ = repos.Notifications.MarkAllRead(ctx, "alice")
	assert.Zero(t, updated)

	unreadFeed, _ := repos.Notifications.ListForUser(ctx, "alice", true, 0, 10)
	require.Len(t, unreadFeed, 1)
	assert.True(t, unreadFeed[0].IsBroadcast())
}

func TestApplications_DuplicateNumberAndFilters(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	first := &models.Application{Name: "Li", Number: "2025001", Grade: "2025", FollowDirection: "Backend"}
	_, err := repos.Applications.Create(ctx, first)
	require.NoError(t, err)

	_, err = repos.Applications.Create(ctx, &models.Application{Name: "Other", Number: "2025001"})
	assert.ErrorIs(t, err, apperrors.ErrApplicationAlreadyExists)

	_, _ = repos.Applications.Create(ctx, &models.Application{Name: "Wang", Number: "2024002", Grade: "2024", FollowDirection: "frontend"})

	list, _ := repos.Applications.List(ctx, models.ApplicationFilter{Direction: "back"}, 0, 10)
	require.Len(t, list, 1)
	assert.Equal(t, "Li", list[0].Name)

	n, _ := repos.Applications.Count(ctx, models.ApplicationFilter{Keyword: "2024"})
	assert.Equal(t, int64(1), n)

	n, _ = repos.Applications.Count(ctx, models.ApplicationFilter{Grade: "2025", Name: "li"})
	assert.Equal(t, int64(1), n)
}
