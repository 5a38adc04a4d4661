package comments

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

const commentColumns = `id, post_id, content, sender, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	c := &models.Comment{}
	if err := row.Scan(&c.ID, &c.PostID, &c.Content, &c.Sender, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func parseIDs(ids []string) error {
	for _, id := range ids {
		if err := dbx.ParseID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := parseIDs([]string{comment.PostID, comment.Sender}); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO comments (post_id, content, sender)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	c, err := scanComment(r.db.QueryRowContext(ctx, query, comment.PostID, comment.Content, comment.Sender))
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if err := dbx.ParseID(id); err != nil {
		return nil, err
	}

	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at, id`
	var args []any

	if postID != "" {
		if err := dbx.ParseID(postID); err != nil {
			return nil, err
		}
		query = `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at, id`
		args = append(args, postID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ListIDsByPostIDs(ctx context.Context, postIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(postIDs) == 0 {
		return result, nil
	}
	if err := parseIDs(postIDs); err != nil {
		return nil, err
	}

	query := `
		SELECT post_id, string_agg(id::text, ',' ORDER BY created_at, id)
		FROM comments
		WHERE post_id = ANY($1::uuid[])
		GROUP BY post_id
	`
	rows, err := r.db.QueryContext(ctx, query, dbx.UUIDArray(postIDs))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, ids string
		if err := rows.Scan(&postID, &ids); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[postID] = dbx.SplitIDs(ids)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := dbx.ParseID(comment.ID); err != nil {
		return nil, err
	}

	query := `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + commentColumns

	c, err := scanComment(r.db.QueryRowContext(ctx, query, comment.ID, comment.Content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if err := dbx.ParseID(id); err != nil {
		return err
	}

	n, err := r.exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByPostIDs(ctx context.Context, postIDs []string) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	if err := parseIDs(postIDs); err != nil {
		return 0, err
	}
	return r.exec(ctx, `DELETE FROM comments WHERE post_id = ANY($1::uuid[])`, dbx.UUIDArray(postIDs))
}

func (r *PostgresRepository) DeleteBySender(ctx context.Context, sender string) (int64, error) {
	if err := dbx.ParseID(sender); err != nil {
		return 0, err
	}
	return r.exec(ctx, `DELETE FROM comments WHERE sender = $1`, sender)
}
