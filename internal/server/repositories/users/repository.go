// Package users declares the user repository contract and its PostgreSQL,
// MongoDB and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// Repository is the persistence contract for users. Lookups by id return
// common.ErrMalformedID for ids the backend cannot parse and
// common.ErrorNotFound when no record matches. Create and Update return
// common.ErrorAlreadyExists when the username or email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsByEmailOrUserName reports whether either value is already taken.
	ExistsByEmailOrUserName(ctx context.Context, email, userName string) (bool, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*models.User, error)
	// Update overwrites username, email and password hash of user.ID.
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
