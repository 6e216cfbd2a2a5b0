package services

import (
	"context"
	"sync"
	"testing"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replyRecipients(t *testing.T, env *testEnv, user string) int64 {
	t.Helper()
	n, err := env.notifications.UnreadCount(context.Background(), user)
	require.NoError(t, err)
	return n
}

func TestCreateComment_ReplyFanOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	post, err := env.engagement.CreatePost(ctx, "A", "Hello", "first post")
	require.NoError(t, err)

	c1, err := env.engagement.CreateComment(ctx, post.ID, "B", "nice", 0)
	require.NoError(t, err)

	stored, _ := env.engagement.GetPost(ctx, post.ID)
	assert.Equal(t, 1, stored.CommentCount)
	assert.Equal(t, int64(1), replyRecipients(t, env, "A"))
	assert.Zero(t, replyRecipients(t, env, "B"))

	_, err = env.engagement.CreateComment(ctx, post.ID, "C", "agreed", c1.ID)
	require.NoError(t, err)

	stored, _ = env.engagement.GetPost(ctx, post.ID)
	assert.Equal(t, 2, stored.CommentCount)
	assert.Equal(t, int64(2), replyRecipients(t, env, "A"))
	assert.Equal(t, int64(1), replyRecipients(t, env, "B"))
	assert.Zero(t, replyRecipients(t, env, "C"))

	feed, _, err := env.notifications.List(ctx, "B", 1, 10, false)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotificationReply, feed[0].Type)
	assert.Equal(t, "user C replied to your comment", feed[0].Message)
	assert.Equal(t, 3, env.publisher.count())
}

func TestCreateComment_NoSelfOrDuplicateNotifications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	post, _ := env.engagement.CreatePost(ctx, "A", "Hello", "body")

	// owner comments on own post
	c1, err := env.engagement.CreateComment(ctx, post.ID, "A", "bump", 0)
	require.NoError(t, err)
	assert.Zero(t, replyRecipients(t, env, "A"))

	// B replies to the owner's comment: owner is notified once, not twice
	_, err = env.engagement.CreateComment(ctx, post.ID, "B", "reply", c1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), replyRecipients(t, env, "A"))

	// a missing parent is ignored
	_, err = env.engagement.CreateComment(ctx, post.ID, "B", "orphan reply", 9999)
	require.NoError(t, err)
	assert.Equal(t, int64(2), replyRecipients(t, env, "A"))
}

func TestCreateComment_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engagement.CreateComment(ctx, 42, "B", "hi", 0)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	post, _ := env.engagement.CreatePost(ctx, "A", "t", "c")
	_, err = env.engagement.CreateComment(ctx, post.ID, "B", "   ", 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = env.engagement.CreateComment(ctx, post.ID, "", "hi", 0)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCreatePost_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engagement.CreatePost(ctx, "A", "", "content")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = env.engagement.CreatePost(ctx, "A", "title", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	post, err := env.engagement.CreatePost(ctx, "A", "  title ", "content")
	require.NoError(t, err)
	assert.Equal(t, "title", post.Title)
	assert.False(t, post.IsSticky)
	assert.False(t, post.IsFeatured)
	assert.Zero(t, post.CommentCount)
}

func TestToggleLike_TwiceRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	post, _ := env.engagement.CreatePost(ctx, "A", "t", "c")

	liked, err := env.engagement.ToggleLike(ctx, "B", models.LikeTargetPost, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = env.engagement.ToggleLike(ctx, "B", models.LikeTargetPost, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	n, _ := env.repos.Likes.Count(ctx, models.LikeTargetPost, post.ID)
	assert.Zero(t, n)

	// only the first toggle notified the owner
	feed, _, _ := env.notifications.List(ctx, "A", 1, 10, false)
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotificationLike, feed[0].Type)
	assert.Equal(t, "user B liked your post《t》", feed[0].Message)
}

func TestToggleLike_SelfLikeAndCommentTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	post, _ := env.engagement.CreatePost(ctx, "A", "t", "c")
	comment, _ := env.engagement.CreateComment(ctx, post.ID, "B", "hi", 0)
	before := replyRecipients(t, env, "A")

	liked, err := env.engagement.ToggleLike(ctx, "A", models.LikeTargetPost, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, before, replyRecipients(t, env, "A"), "self-like must not notify")

	liked, err = env.engagement.ToggleLike(ctx, "A", models.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	feed, _, _ := env.notifications.List(ctx, "B", 1, 10, false)
	require.Len(t, feed, 1)
	require.NotNil(t, feed[0].CommentID)
	assert.Equal(t, comment.ID, *feed[0].CommentID)
}

func TestToggleLike_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engagement.ToggleLike(ctx, "B", models.LikeTargetPost, 1)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = env.engagement.ToggleLike(ctx, "", models.LikeTargetPost, 1)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = env.engagement.ToggleLike(ctx, "B", models.LikeTarget("user"), 1)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestToggleLike_ConcurrentSameTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post, _ := env.engagement.CreatePost(ctx, "A", "t", "c")

	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.engagement.ToggleLike(ctx, "B", models.LikeTargetPost, post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	exists, err := env.repos.Likes.Exists(ctx, "B", models.LikeTargetPost, post.ID)
	require.NoError(t, err)
	assert.True(t, exists, "odd number of toggles ends liked")
}

func TestCommentCount_MatchesRecountAfterDeletes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post, _ := env.engagement.CreatePost(ctx, "A", "t", "c")

	var ids []int64
	for i := 0; i < 4; i++ {
		c, err := env.engagement.CreateComment(ctx, post.ID, "B", "x", 0)
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	require.NoError(t, env.engagement.DeleteComment(ctx, ids[0]))
	require.NoError(t, env.engagement.DeleteComment(ctx, ids[2]))

	stored, _ := env.engagement.GetPost(ctx, post.ID)
	live, _ := env.repos.Comments.CountByPost(ctx, post.ID)
	assert.Equal(t, int(live), stored.CommentCount)
	assert.Equal(t, 2, stored.CommentCount)

	assert.ErrorIs(t, env.engagement.DeleteComment(ctx, ids[0]), apperrors.ErrCommentNotFound)
}

func TestListPosts_ClampsPages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = env.engagement.CreatePost(ctx, "A", "t", "c")
	}

	posts, page, err := env.engagement.ListPosts(ctx, 99, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, posts, 1)

	_, _, err = env.engagement.ListComments(ctx, 404, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestModeration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post, _ := env.engagement.CreatePost(ctx, "A", "t", "c")

	p, err := env.engagement.TogglePostSticky(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, p.IsSticky)
	p, err = env.engagement.TogglePostFeatured(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, p.IsFeatured)

	require.NoError(t, env.engagement.DeletePost(ctx, post.ID))
	_, err = env.engagement.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
