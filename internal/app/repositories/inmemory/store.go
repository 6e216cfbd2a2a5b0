// Package inmemory implements the repositories on top of mutex-guarded maps.
// It backs the `memory` storage driver and the service tests.
package inmemory

import (
	"sync"
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
)

type likeKey struct {
	userID   string
	target   models.LikeTarget
	targetID int64
}

// Store holds every table. All repositories built from one Store share its lock,
// which makes each repository call atomic.
type Store struct {
	mu sync.RWMutex

	applications  map[int64]*models.Application
	posts         map[int64]*models.Post
	comments      map[int64]*models.Comment
	likes         map[likeKey]*models.Like
	notifications map[int64]*models.Notification

	nextID int64
	now    func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		applications:  make(map[int64]*models.Application),
		posts:         make(map[int64]*models.Post),
		comments:      make(map[int64]*models.Comment),
		likes:         make(map[likeKey]*models.Like),
		notifications: make(map[int64]*models.Notification),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// NewRepositories wires a fresh Store into the repositories container.
func NewRepositories() *repositories.Repositories {
	return New().Repositories()
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Applications:  &applicationRepo{s},
		Posts:         &postRepo{s},
		Comments:      &commentRepo{s},
		Likes:         &likeRepo{s},
		Notifications: &notificationRepo{s},
	}
}

// id returns the next identifier. Callers hold s.mu.
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func page[T any](items []T, offset, limit uint64) []T {
	if offset >= uint64(len(items)) {
		return []T{}
	}
	end := offset + limit
	if end > uint64(len(items)) {
		end = uint64(len(items))
	}
	return items[offset:end]
}
