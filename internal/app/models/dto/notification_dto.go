package dto

import (
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
)

// NotificationResponse represents a notification in a user's feed
type NotificationResponse struct {
	ID           int64     `json:"id" example:"5"`
	Type         string    `json:"type" example:"reply" enums:"reply,system,like,post,announcement"`
	Message      string    `json:"message"`
	SenderUserID *string   `json:"senderUserId,omitempty"`
	PostID       *int64    `json:"postId,omitempty"`
	CommentID    *int64    `json:"commentId,omitempty"`
	IsRead       bool      `json:"isRead"`
	IsBroadcast  bool      `json:"isBroadcast"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UnreadCountResponse carries the unread badge count.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount" example:"3"`
}

// MarkAllReadResponse carries the number of notifications flipped to read.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated" example:"3"`
}

// CreateAnnouncementRequest publishes an announcement. An empty RecipientIDs
// list broadcasts to everyone.
type CreateAnnouncementRequest struct {
	Message      string   `json:"message" binding:"required,max=200" example:"Interviews start Monday"`
	RecipientIDs []string `json:"recipientIds" binding:"omitempty,dive,required,max=36"`
}

// AnnouncementResponse reports how many notifications were written.
type AnnouncementResponse struct {
	Created int `json:"created" example:"1"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		Type:         string(n.Type),
		Message:      n.Message,
		SenderUserID: n.SenderUserID,
		PostID:       n.PostID,
		CommentID:    n.CommentID,
		IsRead:       n.IsRead,
		IsBroadcast:  n.IsBroadcast(),
		CreatedAt:    n.CreatedAt,
	}
}

// FromNotifications converts a slice of notifications.
func FromNotifications(items []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(items))
	for i := range items {
		out = append(out, FromNotification(&items[i]))
	}
	return out
}
