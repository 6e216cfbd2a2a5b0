package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/csecl/interviewhub/internal/app/auth"
	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/helpers"
	"github.com/csecl/interviewhub/internal/pkg/keylock"
	"github.com/csecl/interviewhub/internal/pkg/metrics"
	"github.com/csecl/interviewhub/internal/pkg/validation"
	"github.com/rs/zerolog"
)

const (
	MaxPostTitleLength = 200
	MaxCommentLength   = 1000
)

// EngagementService handles posts, comments and likes together with the
// notifications they fan out.
type EngagementService struct {
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	likes         repositories.LikeRepository
	notifications *NotificationService
	locks         *keylock.Locker
	logger        zerolog.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(repos *repositories.Repositories, notifications *NotificationService, logger zerolog.Logger) *EngagementService {
	return &EngagementService{
		posts:         repos.Posts,
		comments:      repos.Comments,
		likes:         repos.Likes,
		notifications: notifications,
		locks:         keylock.New(),
		logger:        logger,
	}
}

func targetKey(target models.LikeTarget, id int64) string {
	return fmt.Sprintf("%s:%d", target, id)
}

// CreatePost validates and stores a new post owned by userID.
func (s *EngagementService) CreatePost(ctx context.Context, userID, title, content string) (*models.Post, error) {
	if err := auth.RequireIdentity(userID); err != nil {
		return nil, err
	}
	title, err := validation.RequireText("title", title, MaxPostTitleLength)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	content, err = validation.RequireText("content", content, 0)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	post := &models.Post{Title: title, Content: content, UserID: userID}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	metrics.PostsCreated.Inc()
	s.logger.Info().Int64("postID", post.ID).Str("userID", userID).Msg("Post created")
	return post, nil
}

// GetPost retrieves a post by ID
func (s *EngagementService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// ListPosts returns a page of posts: sticky first, then featured, then newest.
func (s *EngagementService) ListPosts(ctx context.Context, page, size int) ([]models.Post, helpers.Page, error) {
	total, err := s.posts.Count(ctx)
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error counting posts: %w", err)
	}

	p := helpers.ClampPage(page, size, total)
	posts, err := s.posts.List(ctx, p.Offset(), p.Limit())
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, p, nil
}

// ListComments returns a page of a post's comments, oldest first.
func (s *EngagementService) ListComments(ctx context.Context, postID int64, page, size int) ([]models.Comment, helpers.Page, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, helpers.Page{}, err
	}

	total, err := s.comments.CountByPost(ctx, postID)
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error counting comments: %w", err)
	}

	p := helpers.ClampPage(page, size, total)
	comments, err := s.comments.ListByPost(ctx, postID, p.Offset(), p.Limit())
	if err != nil {
		return nil, helpers.Page{}, fmt.Errorf("error listing comments: %w", err)
	}
	return comments, p, nil
}

// CreateComment stores a comment, recounts the post's comments and notifies
// the post owner and the parent comment's author. Once the comment is saved
// the call succeeds; recount and notification failures are only logged.
func (s *EngagementService) CreateComment(ctx context.Context, postID int64, userID, content string, parentID int64) (*models.Comment, error) {
	if err := auth.RequireIdentity(userID); err != nil {
		return nil, err
	}
	content, err := validation.RequireText("content", content, MaxCommentLength)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if parentID < 0 {
		return nil, apperrors.NewValidationError("parentCommentId must not be negative")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: content, ParentCommentID: parentID}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	metrics.CommentsCreated.Inc()

	s.recount(ctx, postID)
	s.notifyComment(ctx, post, comment)
	return comment, nil
}

// recount recomputes the cached comment count under the post's lock.
func (s *EngagementService) recount(ctx context.Context, postID int64) {
	unlock := s.locks.Lock(targetKey(models.LikeTargetPost, postID))
	defer unlock()

	if _, err := s.posts.RecountComments(ctx, postID); err != nil {
		// The post may have been deleted concurrently; the comment stays.
		s.logger.Warn().Err(err).Int64("postID", postID).Msg("Could not recount comments")
	}
}

func (s *EngagementService) notifyComment(ctx context.Context, post *models.Post, comment *models.Comment) {
	notified := map[string]bool{comment.UserID: true}

	if !notified[post.UserID] {
		s.notify(ctx, &models.Notification{
			RecipientUserID: models.StringPtr(post.UserID),
			SenderUserID:    models.StringPtr(comment.UserID),
			Type:            models.NotificationReply,
			Message:         fmt.Sprintf("user %s commented on your post《%s》", comment.UserID, post.Title),
			PostID:          models.Int64Ptr(post.ID),
			CommentID:       models.Int64Ptr(comment.ID),
		})
		notified[post.UserID] = true
	}

	if comment.ParentCommentID <= 0 {
		return
	}
	parent, err := s.comments.GetByID(ctx, comment.ParentCommentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Err(err).Int64("parentCommentID", comment.ParentCommentID).Msg("Could not load parent comment")
		}
		return
	}
	if notified[parent.UserID] {
		return
	}
	s.notify(ctx, &models.Notification{
		RecipientUserID: models.StringPtr(parent.UserID),
		SenderUserID:    models.StringPtr(comment.UserID),
		Type:            models.NotificationReply,
		Message:         fmt.Sprintf("user %s replied to your comment", comment.UserID),
		PostID:          models.Int64Ptr(post.ID),
		CommentID:       models.Int64Ptr(comment.ID),
	})
}

func (s *EngagementService) notify(ctx context.Context, n *models.Notification) {
	if err := s.notifications.Notify(ctx, n); err != nil {
		s.logger.Error().Err(err).
			Str("type", string(n.Type)).
			Str("recipient", *n.RecipientUserID).
			Msg("Failed to create notification")
	}
}

// ToggleLike adds the user's like on the target or removes it, returning the
// resulting state. Toggles on one target run one at a time. A new like on
// someone else's record notifies its owner.
func (s *EngagementService) ToggleLike(ctx context.Context, userID string, target models.LikeTarget, targetID int64) (bool, error) {
	if err := auth.RequireIdentity(userID); err != nil {
		return false, err
	}
	if !target.Valid() {
		return false, apperrors.NewBadRequestError("like target must be post or comment")
	}

	unlock := s.locks.Lock(targetKey(target, targetID))
	defer unlock()

	owner, postID, title, err := s.likeTarget(ctx, target, targetID)
	if err != nil {
		return false, err
	}

	liked, err := s.likes.Toggle(ctx, userID, target, targetID)
	if err != nil {
		return false, err
	}
	metrics.ObserveLike(string(target), liked)

	if liked && owner != userID {
		n := &models.Notification{
			RecipientUserID: models.StringPtr(owner),
			SenderUserID:    models.StringPtr(userID),
			Type:            models.NotificationLike,
			PostID:          models.Int64Ptr(postID),
		}
		if target == models.LikeTargetPost {
			n.Message = fmt.Sprintf("user %s liked your post《%s》", userID, title)
		} else {
			n.Message = fmt.Sprintf("user %s liked your comment", userID)
			n.CommentID = models.Int64Ptr(targetID)
		}
		s.notify(ctx, n)
	}
	return liked, nil
}

// likeTarget resolves the owner of the liked record and the post it belongs to.
func (s *EngagementService) likeTarget(ctx context.Context, target models.LikeTarget, targetID int64) (owner string, postID int64, title string, err error) {
	if target == models.LikeTargetPost {
		post, err := s.posts.GetByID(ctx, targetID)
		if err != nil {
			return "", 0, "", err
		}
		return post.UserID, post.ID, post.Title, nil
	}

	comment, err := s.comments.GetByID(ctx, targetID)
	if err != nil {
		return "", 0, "", err
	}
	return comment.UserID, comment.PostID, "", nil
}

// TogglePostSticky flips the sticky flag of a post
func (s *EngagementService) TogglePostSticky(ctx context.Context, postID int64) (*models.Post, error) {
	return s.posts.ToggleSticky(ctx, postID)
}

// TogglePostFeatured flips the featured flag of a post
func (s *EngagementService) TogglePostFeatured(ctx context.Context, postID int64) (*models.Post, error) {
	return s.posts.ToggleFeatured(ctx, postID)
}

// DeletePost removes a post with its comments and likes
func (s *EngagementService) DeletePost(ctx context.Context, postID int64) error {
	unlock := s.locks.Lock(targetKey(models.LikeTargetPost, postID))
	defer unlock()

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.logger.Info().Int64("postID", postID).Msg("Post deleted")
	return nil
}

// DeleteComment removes a comment and its likes, then recounts its post.
func (s *EngagementService) DeleteComment(ctx context.Context, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.recount(ctx, comment.PostID)
	s.logger.Info().Int64("commentID", commentID).Int64("postID", comment.PostID).Msg("Comment deleted")
	return nil
}
