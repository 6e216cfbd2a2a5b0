package models

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationReply        NotificationType = "reply"
	NotificationSystem       NotificationType = "system"
	NotificationLike         NotificationType = "like"
	NotificationPost         NotificationType = "post"
	NotificationAnnouncement NotificationType = "announcement"
)

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationReply, NotificationSystem, NotificationLike, NotificationPost, NotificationAnnouncement:
		return true
	}
	return false
}

// Notification is either targeted at one recipient or, when RecipientUserID is
// nil, broadcast to every user.
type Notification struct {
	ID              int64            `json:"id"`
	RecipientUserID *string          `json:"recipientUserId"`
	SenderUserID    *string          `json:"senderUserId"`
	Type            NotificationType `json:"type"`
	Message         string           `json:"message"`
	PostID          *int64           `json:"postId,omitempty"`
	CommentID       *int64           `json:"commentId,omitempty"`
	IsRead          bool             `json:"isRead"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// IsBroadcast reports whether the notification has no specific recipient.
func (n *Notification) IsBroadcast() bool {
	return n.RecipientUserID == nil
}

// IsAddressedTo reports whether n is targeted at exactly userID.
func (n *Notification) IsAddressedTo(userID string) bool {
	return n.RecipientUserID != nil && *n.RecipientUserID == userID
}
