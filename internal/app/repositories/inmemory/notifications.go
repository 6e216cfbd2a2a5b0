package inmemory

import (
	"context"
	"sort"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
)

type notificationRepo struct{ s *Store }

func (r *notificationRepo) insert(n *models.Notification) {
	cp := *n
	cp.ID = r.s.id()
	cp.CreatedAt = r.s.now()
	r.s.notifications[cp.ID] = &cp
	n.ID, n.CreatedAt = cp.ID, cp.CreatedAt
}

func (r *notificationRepo) Create(_ context.Context, n *models.Notification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.insert(n)
	return n.ID, nil
}

func (r *notificationRepo) CreateBatch(_ context.Context, items []*models.Notification) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range items {
		r.insert(n)
	}
	return len(items), nil
}

func (r *notificationRepo) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return nil, apperrors.ErrNotificationNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *notificationRepo) feed(userID string, unreadOnly bool) []models.Notification {
	out := make([]models.Notification, 0)
	for _, n := range r.s.notifications {
		if !n.IsBroadcast() && !n.IsAddressedTo(userID) {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *notificationRepo) ListForUser(_ context.Context, userID string, unreadOnly bool, offset, limit uint64) ([]models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.feed(userID, unreadOnly), offset, limit), nil
}

func (r *notificationRepo) CountForUser(_ context.Context, userID string, unreadOnly bool) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.feed(userID, unreadOnly))), nil
}

func (r *notificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, item := range r.s.notifications {
		if item.IsAddressedTo(userID) && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok {
		return apperrors.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (r *notificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	for _, n := range r.s.notifications {
		if n.IsAddressedTo(userID) && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}
