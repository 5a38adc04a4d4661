package comments

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// MemoryRepository keeps comments in process memory, in insertion order.
type MemoryRepository struct {
	mu       sync.RWMutex
	comments map[string]models.Comment
	order    []string
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{comments: make(map[string]models.Comment), now: time.Now}
}

// canonicalID returns id in the lowercase hyphenated form used as map key.
func canonicalID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrMalformedID
	}
	return u.String(), nil
}

func (r *MemoryRepository) Create(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	postID, err := canonicalID(comment.PostID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	c := *comment
	c.PostID = postID
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.comments[c.ID] = c
	r.order = append(r.order, c.ID)

	return &c, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Comment, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) List(_ context.Context, postID string) ([]*models.Comment, error) {
	if postID != "" {
		var err error
		if postID, err = canonicalID(postID); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Comment, 0)
	for _, id := range r.order {
		c := r.comments[id]
		if postID != "" && c.PostID != postID {
			continue
		}
		result = append(result, &c)
	}
	return result, nil
}

func (r *MemoryRepository) ListIDsByPostIDs(_ context.Context, postIDs []string) (map[string][]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]string)
	for _, id := range r.order {
		c := r.comments[id]
		if slices.Contains(postIDs, c.PostID) {
			result[c.PostID] = append(result[c.PostID], c.ID)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Update(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	id, err := canonicalID(comment.ID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Content = comment.Content
	c.UpdatedAt = r.now().UTC()
	r.comments[c.ID] = c

	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.comments, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *MemoryRepository) deleteWhere(match func(models.Comment) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	r.order = slices.DeleteFunc(r.order, func(id string) bool {
		if !match(r.comments[id]) {
			return false
		}
		delete(r.comments, id)
		n++
		return true
	})
	return n
}

func (r *MemoryRepository) DeleteByPostIDs(_ context.Context, postIDs []string) (int64, error) {
	return r.deleteWhere(func(c models.Comment) bool { return slices.Contains(postIDs, c.PostID) }), nil
}

func (r *MemoryRepository) DeleteBySender(_ context.Context, sender string) (int64, error) {
	return r.deleteWhere(func(c models.Comment) bool { return c.Sender == sender }), nil
}
