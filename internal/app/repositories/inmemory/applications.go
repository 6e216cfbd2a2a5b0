package inmemory

import (
	"context"
	"sort"
	"strings"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
)

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(_ context.Context, app *models.Application) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.applications {
		if existing.Number == app.Number {
			return 0, apperrors.ErrApplicationAlreadyExists
		}
	}

	cp := *app
	cp.ID = r.s.id()
	cp.CreatedAt = r.s.now()
	if cp.BookTime.IsZero() {
		cp.BookTime = cp.CreatedAt
	}
	r.s.applications[cp.ID] = &cp

	app.ID, app.CreatedAt, app.BookTime = cp.ID, cp.CreatedAt, cp.BookTime
	return cp.ID, nil
}

func (r *applicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	cp := *app
	return &cp, nil
}

func (r *applicationRepo) GetByNumber(_ context.Context, number string) (*models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, app := range r.s.applications {
		if app.Number == number {
			cp := *app
			return &cp, nil
		}
	}
	return nil, apperrors.ErrApplicationNotFound
}

func matchesFilter(app *models.Application, f models.ApplicationFilter) bool {
	if f.Keyword != "" && !strings.Contains(app.Number, f.Keyword) {
		return false
	}
	if f.Direction != "" && !strings.Contains(strings.ToLower(app.FollowDirection), strings.ToLower(f.Direction)) {
		return false
	}
	if f.Grade != "" && app.Grade != f.Grade {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(app.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

func (r *applicationRepo) filtered(f models.ApplicationFilter) []models.Application {
	out := make([]models.Application, 0)
	for _, app := range r.s.applications {
		if matchesFilter(app, f) {
			out = append(out, *app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BookTime.Equal(out[j].BookTime) {
			return out[i].BookTime.After(out[j].BookTime)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *applicationRepo) List(_ context.Context, f models.ApplicationFilter, offset, limit uint64) ([]models.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.filtered(f), offset, limit), nil
}

func (r *applicationRepo) Count(_ context.Context, f models.ApplicationFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filtered(f))), nil
}

func (r *applicationRepo) Update(_ context.Context, app *models.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.applications[app.ID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	for id, other := range r.s.applications {
		if id != app.ID && other.Number == app.Number {
			return apperrors.ErrApplicationAlreadyExists
		}
	}

	cp := *app
	cp.CreatedAt = existing.CreatedAt
	cp.Value = existing.Value
	cp.AdminRemark = existing.AdminRemark
	if cp.BookTime.IsZero() {
		cp.BookTime = existing.BookTime
	}
	r.s.applications[app.ID] = &cp
	return nil
}

func (r *applicationRepo) UpdateScore(_ context.Context, id int64, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.Value = &value
	return nil
}

func (r *applicationRepo) UpdateRemark(_ context.Context, id int64, remark string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.AdminRemark = remark
	return nil
}

func (r *applicationRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.applications[id]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(r.s.applications, id)
	return nil
}
