package users

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// MemoryRepository keeps users in process memory. Ids are UUIDs, so it
// rejects the same malformed ids the PostgreSQL backend does.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	order []string
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User), now: time.Now}
}

func (r *MemoryRepository) taken(email, userName, exceptID string) bool {
	for id, u := range r.users {
		if id == exceptID {
			continue
		}
		if u.Email == email || u.UserName == userName {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(user.Email, user.UserName, "") {
		return nil, common.ErrorAlreadyExists
	}

	now := r.now().UTC()
	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)

	out := u
	return &out, nil
}

// canonicalID returns id in the lowercase hyphenated form used as map key.
func canonicalID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrMalformedID
	}
	return u.String(), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ExistsByEmailOrUserName(_ context.Context, email, userName string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.taken(email, userName, ""), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		u := r.users[r.order[i]]
		result = append(result, &u)
	}
	return result, nil
}

func (r *MemoryRepository) Update(_ context.Context, user *models.User) (*models.User, error) {
	id, err := canonicalID(user.ID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if r.taken(user.Email, user.UserName, id) {
		return nil, common.ErrorAlreadyExists
	}

	u.UserName = user.UserName
	u.Email = user.Email
	u.PasswordHash = user.PasswordHash
	u.UpdatedAt = r.now().UTC()
	r.users[u.ID] = u

	out := u
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}
