package dto

import (
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
)

// CreatePostRequest is the body of a new forum post.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,max=200" example:"Lab open day"`
	Content string `json:"content" binding:"required" example:"Is the open day on Friday?"`
}

// CreateCommentRequest is the body of a new comment. ParentCommentID 0 means a
// top-level comment.
type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required,max=1000" example:"Yes, 3pm."`
	ParentCommentID int64  `json:"parentCommentId" binding:"min=0" example:"0"`
}

// PostResponse represents a forum post
type PostResponse struct {
	ID           int64     `json:"id" example:"1"`
	Title        string    `json:"title" example:"Lab open day"`
	Content      string    `json:"content"`
	UserID       string    `json:"userId" example:"4f7c2a9e-0d7b-4a59-9a3c-6c0f0d2b7e11"`
	IsSticky     bool      `json:"isSticky"`
	IsFeatured   bool      `json:"isFeatured"`
	CommentCount int       `json:"commentCount" example:"2"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CommentResponse represents a comment
type CommentResponse struct {
	ID              int64     `json:"id" example:"10"`
	PostID          int64     `json:"postId" example:"1"`
	UserID          string    `json:"userId"`
	Content         string    `json:"content"`
	ParentCommentID int64     `json:"parentCommentId" example:"0"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToggleLikeResponse reports the like state after a toggle.
type ToggleLikeResponse struct {
	Liked    bool   `json:"liked" example:"true"`
	Target   string `json:"target" example:"post"`
	TargetID int64  `json:"targetId" example:"1"`
}

// ModerationResponse reports the flags of a post after an admin toggle.
type ModerationResponse struct {
	ID         int64 `json:"id" example:"1"`
	IsSticky   bool  `json:"isSticky"`
	IsFeatured bool  `json:"isFeatured"`
}

// FromPost converts a models.Post to a PostResponse
func FromPost(p *models.Post) PostResponse {
	return PostResponse{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		UserID:       p.UserID,
		IsSticky:     p.IsSticky,
		IsFeatured:   p.IsFeatured,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// FromPosts converts a slice of posts.
func FromPosts(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, FromPost(&posts[i]))
	}
	return out
}

// FromComment converts a models.Comment to a CommentResponse
func FromComment(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:              c.ID,
		PostID:          c.PostID,
		UserID:          c.UserID,
		Content:         c.Content,
		ParentCommentID: c.ParentCommentID,
		CreatedAt:       c.CreatedAt,
	}
}

// FromComments converts a slice of comments.
func FromComments(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, FromComment(&comments[i]))
	}
	return out
}
