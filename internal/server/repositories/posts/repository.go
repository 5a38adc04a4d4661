// Package posts declares the post repository contract and its PostgreSQL,
// MongoDB and in-memory implementations. Repositories never fill
// models.Post.Comments; the posts service derives it from the comment store.
package posts

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// List returns posts in creation order. An empty sender means all posts.
	List(ctx context.Context, sender string) ([]*models.Post, error)
	// ListIDsBySender returns the ids of every post owned by sender.
	ListIDsBySender(ctx context.Context, sender string) ([]string, error)
	// Update overwrites title and content of post.ID.
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	DeleteBySender(ctx context.Context, sender string) (int64, error)
}
