package models

import "time"

// Post is a forum thread. UserID is an opaque client identifier, not a foreign key.
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	UserID       string    `json:"userId"`
	IsSticky     bool      `json:"isSticky"`
	IsFeatured   bool      `json:"isFeatured"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Comment belongs to a post. ParentCommentID is 0 for top-level comments.
type Comment struct {
	ID              int64     `json:"id"`
	PostID          int64     `json:"postId"`
	UserID          string    `json:"userId"`
	Content         string    `json:"content"`
	ParentCommentID int64     `json:"parentCommentId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// LikeTarget is the kind of record a like points at.
type LikeTarget string

const (
	LikeTargetPost    LikeTarget = "post"
	LikeTargetComment LikeTarget = "comment"
)

// Valid reports whether t is a known target kind.
func (t LikeTarget) Valid() bool {
	return t == LikeTargetPost || t == LikeTargetComment
}

// Like points at exactly one of a post or a comment.
type Like struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	PostID    *int64    `json:"postId,omitempty"`
	CommentID *int64    `json:"commentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
