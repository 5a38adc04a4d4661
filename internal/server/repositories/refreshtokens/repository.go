// Package refreshtokens declares the repository contract for persisted
// refresh tokens and its PostgreSQL, MongoDB and in-memory implementations.
package refreshtokens

import (
	"context"
	"time"
)

// Repository stores outstanding refresh tokens.
type Repository interface {
	// Create stores token for userID, valid until expires.
	Create(ctx context.Context, userID string, token string, expires time.Time) error

	// DeleteForUser removes the record matching both token and userID and
	// reports whether one was removed. The check and the delete are a single
	// store operation, so of two concurrent callers at most one gets true.
	DeleteForUser(ctx context.Context, token string, userID string) (bool, error)

	// Delete removes a refresh token by its token string. Deleting a
	// non-existent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteByUser removes every token of userID and returns the count.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
