// Package repomanager bundles the repositories of one storage backend and
// exposes its schema setup and shutdown hooks.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations brings the backend schema (tables or indexes) up to date.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Posts() posts.Repository
	Comments() comments.Repository
	Close(ctx context.Context) error
}
