package repomanager

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager holds process-local repositories. Data is lost on
// exit.
type MemoryRepositoryManager struct {
	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	posts         *posts.MemoryRepository
	comments      *comments.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		posts:         posts.NewMemoryRepository(),
		comments:      comments.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository                 { return m.users }
func (m *MemoryRepositoryManager) RefreshTokens() refreshtokens.Repository { return m.refreshTokens }
func (m *MemoryRepositoryManager) Posts() posts.Repository                 { return m.posts }
func (m *MemoryRepositoryManager) Comments() comments.Repository           { return m.comments }

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Close(context.Context) error         { return nil }
