// Package comments declares the comment repository contract and its
// PostgreSQL, MongoDB and in-memory implementations.
package comments

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	// List returns comments in creation order. An empty postID means all
	// comments; a postID the backend cannot parse is common.ErrMalformedID.
	List(ctx context.Context, postID string) ([]*models.Comment, error)
	// ListIDsByPostIDs maps each post id to its comment ids, oldest first.
	// Posts without comments are absent from the map.
	ListIDsByPostIDs(ctx context.Context, postIDs []string) (map[string][]string, error)
	// Update overwrites the content of comment.ID.
	Update(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByPostIDs(ctx context.Context, postIDs []string) (int64, error)
	DeleteBySender(ctx context.Context, sender string) (int64, error)
}
