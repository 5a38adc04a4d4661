package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/dbx"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `id, title, content, sender, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	p := &models.Post{Comments: []string{}}
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Sender, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := dbx.ParseID(post.Sender); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO posts (title, content, sender)
		VALUES ($1, $2, $3)
		RETURNING ` + postColumns

	created, err := scanPost(r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Sender))
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if err := dbx.ParseID(id); err != nil {
		return nil, err
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	p, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, sender string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at, id`
	var args []any

	if sender != "" {
		if dbx.ParseID(sender) != nil {
			// sender is a plain filter value: an id nobody can own matches nothing
			return []*models.Post{}, nil
		}
		query = `SELECT ` + postColumns + ` FROM posts WHERE sender = $1 ORDER BY created_at, id`
		args = append(args, sender)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListIDsBySender(ctx context.Context, sender string) ([]string, error) {
	if err := dbx.ParseID(sender); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM posts WHERE sender = $1`, sender)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ids, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := dbx.ParseID(post.ID); err != nil {
		return nil, err
	}

	query := `
		UPDATE posts
		SET title = $2, content = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + postColumns

	p, err := scanPost(r.db.QueryRowContext(ctx, query, post.ID, post.Title, post.Content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if err := dbx.ParseID(id); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteBySender(ctx context.Context, sender string) (int64, error) {
	if err := dbx.ParseID(sender); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE sender = $1`, sender)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
