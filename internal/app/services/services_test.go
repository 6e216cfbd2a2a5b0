package services

import (
	"sync"
	"testing"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/app/repositories/inmemory"
	"github.com/rs/zerolog"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []*models.Notification
}

func (p *recordingPublisher) Publish(n *models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

type testEnv struct {
	repos         *repositories.Repositories
	publisher     *recordingPublisher
	notifications *NotificationService
	engagement    *EngagementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := inmemory.NewRepositories()
	pub := &recordingPublisher{}
	notifications := NewNotificationService(repos.Notifications, pub, zerolog.Nop())
	return &testEnv{
		repos:         repos,
		publisher:     pub,
		notifications: notifications,
		engagement:    NewEngagementService(repos, notifications, zerolog.Nop()),
	}
}
