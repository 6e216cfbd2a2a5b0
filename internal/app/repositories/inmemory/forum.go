package inmemory

import (
	"context"
	"sort"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
)

type postRepo struct{ s *Store }

func (r *postRepo) Create(_ context.Context, post *models.Post) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *post
	cp.ID = r.s.id()
	cp.CreatedAt = r.s.now()
	cp.UpdatedAt = cp.CreatedAt
	r.s.posts[cp.ID] = &cp

	post.ID, post.CreatedAt, post.UpdatedAt = cp.ID, cp.CreatedAt, cp.UpdatedAt
	return cp.ID, nil
}

func (r *postRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *postRepo) List(_ context.Context, offset, limit uint64) ([]models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsSticky != b.IsSticky {
			return a.IsSticky
		}
		if a.IsFeatured != b.IsFeatured {
			return a.IsFeatured
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return page(out, offset, limit), nil
}

func (r *postRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.posts)), nil
}

func (r *postRepo) toggle(id int64, flip func(p *models.Post)) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	flip(p)
	p.UpdatedAt = r.s.now()
	cp := *p
	return &cp, nil
}

func (r *postRepo) ToggleSticky(_ context.Context, id int64) (*models.Post, error) {
	return r.toggle(id, func(p *models.Post) { p.IsSticky = !p.IsSticky })
}

func (r *postRepo) ToggleFeatured(_ context.Context, id int64) (*models.Post, error) {
	return r.toggle(id, func(p *models.Post) { p.IsFeatured = !p.IsFeatured })
}

func (r *postRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(r.s.posts, id)

	removed := make(map[int64]struct{})
	for cid, c := range r.s.comments {
		if c.PostID == id {
			removed[cid] = struct{}{}
			delete(r.s.comments, cid)
		}
	}
	for k := range r.s.likes {
		if k.target == models.LikeTargetPost && k.targetID == id {
			delete(r.s.likes, k)
			continue
		}
		if _, gone := removed[k.targetID]; gone && k.target == models.LikeTargetComment {
			delete(r.s.likes, k)
		}
	}
	return nil
}

func (r *postRepo) RecountComments(_ context.Context, postID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return 0, apperrors.ErrPostNotFound
	}
	n := 0
	for _, c := range r.s.comments {
		if c.PostID == postID {
			n++
		}
	}
	p.CommentCount = n
	return n, nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(_ context.Context, comment *models.Comment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *comment
	cp.ID = r.s.id()
	cp.CreatedAt = r.s.now()
	cp.UpdatedAt = cp.CreatedAt
	r.s.comments[cp.ID] = &cp

	comment.ID, comment.CreatedAt, comment.UpdatedAt = cp.ID, cp.CreatedAt, cp.UpdatedAt
	return cp.ID, nil
}

func (r *commentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *commentRepo) byPost(postID int64) []models.Comment {
	out := make([]models.Comment, 0)
	for _, c := range r.s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *commentRepo) ListByPost(_ context.Context, postID int64, offset, limit uint64) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.byPost(postID), offset, limit), nil
}

func (r *commentRepo) CountByPost(_ context.Context, postID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.byPost(postID))), nil
}

func (r *commentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return apperrors.ErrCommentNotFound
	}
	delete(r.s.comments, id)
	for k := range r.s.likes {
		if k.target == models.LikeTargetComment && k.targetID == id {
			delete(r.s.likes, k)
		}
	}
	return nil
}

type likeRepo struct{ s *Store }

func (r *likeRepo) targetExists(target models.LikeTarget, id int64) error {
	switch target {
	case models.LikeTargetPost:
		if _, ok := r.s.posts[id]; !ok {
			return apperrors.ErrPostNotFound
		}
	case models.LikeTargetComment:
		if _, ok := r.s.comments[id]; !ok {
			return apperrors.ErrCommentNotFound
		}
	default:
		return apperrors.NewBadRequestError("unknown like target")
	}
	return nil
}

func (r *likeRepo) Toggle(_ context.Context, userID string, target models.LikeTarget, targetID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.targetExists(target, targetID); err != nil {
		return false, err
	}

	key := likeKey{userID: userID, target: target, targetID: targetID}
	if _, ok := r.s.likes[key]; ok {
		delete(r.s.likes, key)
		return false, nil
	}

	like := &models.Like{ID: r.s.id(), UserID: userID, CreatedAt: r.s.now()}
	if target == models.LikeTargetPost {
		like.PostID = models.Int64Ptr(targetID)
	} else {
		like.CommentID = models.Int64Ptr(targetID)
	}
	r.s.likes[key] = like
	return true, nil
}

func (r *likeRepo) Exists(_ context.Context, userID string, target models.LikeTarget, targetID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.likes[likeKey{userID: userID, target: target, targetID: targetID}]
	return ok, nil
}

func (r *likeRepo) Count(_ context.Context, target models.LikeTarget, targetID int64) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for k := range r.s.likes {
		if k.target == target && k.targetID == targetID {
			n++
		}
	}
	return n, nil
}
