package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// MemoryRepository keeps tokens in a map keyed by token string.
type MemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.RefreshToken)}
}

func (r *MemoryRepository) Create(_ context.Context, userID string, token string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = models.RefreshToken{UserID: userID, Token: token, Expires: expires, CreatedAt: time.Now().UTC()}
	return nil
}

func (r *MemoryRepository) DeleteForUser(_ context.Context, token string, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt, ok := r.tokens[token]
	if !ok || rt.UserID != userID {
		return false, nil
	}
	delete(r.tokens, token)
	return true, nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, token)
	return nil
}

func (r *MemoryRepository) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for token, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, token)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored tokens.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
