package posts

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// MemoryRepository keeps posts in process memory, in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[string]models.Post
	order []string
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[string]models.Post), now: time.Now}
}

// canonicalID returns id in the lowercase hyphenated form used as map key.
func canonicalID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrMalformedID
	}
	return u.String(), nil
}

func clone(p models.Post) *models.Post {
	p.Comments = []string{}
	return &p
}

func (r *MemoryRepository) Create(_ context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	p := *post
	p.ID = uuid.NewString()
	p.Comments = nil
	p.CreatedAt = now
	p.UpdatedAt = now
	r.posts[p.ID] = p
	r.order = append(r.order, p.ID)

	return clone(p), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Post, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(p), nil
}

func (r *MemoryRepository) List(_ context.Context, sender string) ([]*models.Post, error) {
	if id, err := canonicalID(sender); err == nil {
		sender = id
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Post, 0, len(r.order))
	for _, id := range r.order {
		p := r.posts[id]
		if sender != "" && p.Sender != sender {
			continue
		}
		result = append(result, clone(p))
	}
	return result, nil
}

func (r *MemoryRepository) ListIDsBySender(_ context.Context, sender string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for _, id := range r.order {
		if r.posts[id].Sender == sender {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *MemoryRepository) Update(_ context.Context, post *models.Post) (*models.Post, error) {
	id, err := canonicalID(post.ID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Title = post.Title
	p.Content = post.Content
	p.UpdatedAt = r.now().UTC()
	r.posts[p.ID] = p

	return clone(p), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.posts, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryRepository) DeleteBySender(_ context.Context, sender string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	r.order = slices.DeleteFunc(r.order, func(id string) bool {
		if r.posts[id].Sender != sender {
			return false
		}
		delete(r.posts, id)
		n++
		return true
	})
	return n, nil
}
