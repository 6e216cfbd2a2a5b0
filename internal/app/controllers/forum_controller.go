package controllers

import (
	"context"
	"net/http"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/app/services"
	"github.com/csecl/interviewhub/internal/middleware"
	"github.com/csecl/interviewhub/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ForumController handles the public forum: posts, comments and likes
type ForumController struct {
	engagement *services.EngagementService
	logger     zerolog.Logger
}

// NewForumController creates a new ForumController
func NewForumController(engagement *services.EngagementService, logger zerolog.Logger) *ForumController {
	return &ForumController{
		engagement: engagement,
		logger:     logger,
	}
}

// ListPosts handles listing forum posts
// @Summary List forum posts
// @Description Sticky posts first, then featured, then newest. Out-of-range pages are clamped.
// @Tags forum
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse,pagination=dto.PaginationInfo} "Posts retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [get]
func (c *ForumController) ListPosts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	posts, p, err := c.engagement.ListPosts(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromPosts(posts), p.Info(), "Posts retrieved successfully"))
}

// CreatePost handles creating a forum post
// @Summary Create a forum post
// @Description Creates a post owned by the caller. A new identity is issued in X-User-ID when the caller has none.
// @Tags forum
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Client identity"
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Missing identity"
// @Router /posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	post, err := c.engagement.CreatePost(ctx.Request.Context(), middleware.CurrentUserID(ctx), req.Title, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromPost(post), "Post created successfully"))
}

// GetPost handles retrieving one post
// @Summary Get a forum post
// @Tags forum
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *ForumController) GetPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	post, err := c.engagement.GetPost(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromPost(post), "Post retrieved successfully"))
}

// ListComments handles listing the comments of a post
// @Summary List comments of a post
// @Description Oldest first. Out-of-range pages are clamped.
// @Tags forum
// @Produce json
// @Param id path int true "Post ID"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse,pagination=dto.PaginationInfo} "Comments retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [get]
func (c *ForumController) ListComments(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	comments, p, err := c.engagement.ListComments(ctx.Request.Context(), id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromComments(comments), p.Info(), "Comments retrieved successfully"))
}

// CreateComment handles commenting on a post
// @Summary Comment on a post
// @Description Creates a comment or a reply. The post author and the parent comment author are notified.
// @Tags forum
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Client identity"
// @Param id path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [post]
func (c *ForumController) CreateComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	comment, err := c.engagement.CreateComment(ctx.Request.Context(), id, middleware.CurrentUserID(ctx), req.Content, req.ParentCommentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromComment(comment), "Comment created successfully"))
}

// TogglePostLike handles liking or unliking a post
// @Summary Toggle a like on a post
// @Tags forum
// @Produce json
// @Param X-User-ID header string true "Client identity"
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleLikeResponse} "Like toggled"
// @Failure 401 {object} dto.ErrorResponse "Missing identity"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/like [post]
func (c *ForumController) TogglePostLike(ctx *gin.Context) {
	c.toggleLike(ctx, models.LikeTargetPost)
}

// ToggleCommentLike handles liking or unliking a comment
// @Summary Toggle a like on a comment
// @Tags forum
// @Produce json
// @Param X-User-ID header string true "Client identity"
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleLikeResponse} "Like toggled"
// @Failure 401 {object} dto.ErrorResponse "Missing identity"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{id}/like [post]
func (c *ForumController) ToggleCommentLike(ctx *gin.Context) {
	c.toggleLike(ctx, models.LikeTargetComment)
}

func (c *ForumController) toggleLike(ctx *gin.Context, target models.LikeTarget) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	liked, err := c.engagement.ToggleLike(ctx.Request.Context(), middleware.CurrentUserID(ctx), target, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	msg := "Like removed"
	if liked {
		msg = "Liked"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToggleLikeResponse{
		Liked:    liked,
		Target:   string(target),
		TargetID: id,
	}, msg))
}

// PinPost toggles the sticky flag of a post
// @Summary Pin or unpin a post
// @Tags admin-forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.ModerationResponse} "Post updated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /admin/forum/posts/{id}/pin [post]
func (c *ForumController) PinPost(ctx *gin.Context) {
	c.moderate(ctx, c.engagement.TogglePostSticky)
}

// FeaturePost toggles the featured flag of a post
// @Summary Feature or unfeature a post
// @Tags admin-forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.ModerationResponse} "Post updated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /admin/forum/posts/{id}/feature [post]
func (c *ForumController) FeaturePost(ctx *gin.Context) {
	c.moderate(ctx, c.engagement.TogglePostFeatured)
}

func (c *ForumController) moderate(ctx *gin.Context, toggle func(ctx context.Context, id int64) (*models.Post, error)) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	post, err := toggle(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("postId", id).Str("admin", middleware.AdminUsername(ctx)).
		Bool("sticky", post.IsSticky).Bool("featured", post.IsFeatured).Msg("Post moderated")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ModerationResponse{
		ID:         post.ID,
		IsSticky:   post.IsSticky,
		IsFeatured: post.IsFeatured,
	}, "Post updated"))
}

// DeletePost handles removing a post with its comments and likes
// @Summary Delete a post
// @Tags admin-forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /admin/forum/posts/{id} [delete]
func (c *ForumController) DeletePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.engagement.DeletePost(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("postId", id).Str("admin", middleware.AdminUsername(ctx)).Msg("Post deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Post deleted successfully"))
}

// DeleteComment handles removing a comment
// @Summary Delete a comment
// @Tags admin-forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse "Comment deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /admin/forum/comments/{id} [delete]
func (c *ForumController) DeleteComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.engagement.DeleteComment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("commentId", id).Str("admin", middleware.AdminUsername(ctx)).Msg("Comment deleted")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Comment deleted successfully"))
}
