package posts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

const (
	postID = "1a2b3c4d-5e6f-4a1b-8c2d-3e4f5a6b7c8d"
	sender = "8d7c6b5a-4f3e-4d2c-9b1a-0f9e8d7c6b5a"
)

var columns = []string{"id", "title", "content", "sender", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+posts\s*\(title,\s*content,\s*sender\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING`).
		WithArgs("t", "c", sender).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(postID, "t", "c", sender, now, now))

	p, err := repo.Create(context.Background(), &models.Post{Title: "t", Content: "c", Sender: sender})
	require.NoError(t, err)
	assert.Equal(t, postID, p.ID)
	assert.NotNil(t, p.Comments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	q := `FROM\s+posts\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(postID).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), postID)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("malformed", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		_, err := repo.GetByID(context.Background(), "abc")
		assert.ErrorIs(t, err, common.ErrMalformedID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnError(errors.New("timeout"))

		_, err := repo.GetByID(context.Background(), postID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestList(t *testing.T) {
	now := time.Now()

	t.Run("all", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+posts\s+ORDER\s+BY\s+created_at,\s*id$`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(postID, "t", "c", sender, now, now))

		list, err := repo.List(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("by sender", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+posts\s+WHERE\s+sender\s*=\s*\$1\s+ORDER\s+BY`).
			WithArgs(sender).
			WillReturnRows(sqlmock.NewRows(columns))

		list, err := repo.List(context.Background(), sender)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("malformed sender matches nothing", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		list, err := repo.List(context.Background(), "someone")
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListIDsBySender(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`^SELECT\s+id\s+FROM\s+posts\s+WHERE\s+sender\s*=\s*\$1$`).
		WithArgs(sender).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID))

	ids, err := repo.ListIDsBySender(context.Background(), sender)
	require.NoError(t, err)
	assert.Equal(t, []string{postID}, ids)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)UPDATE\s+posts\s+SET\s+title\s*=\s*\$2,\s*content\s*=\s*\$3`).
		WithArgs(postID, "t2", "c2").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(postID, "t2", "c2", sender, now, now))

	p, err := repo.Update(context.Background(), &models.Post{ID: postID, Title: "t2", Content: "c2"})
	require.NoError(t, err)
	assert.Equal(t, "t2", p.Title)
	assert.Equal(t, sender, p.Sender)
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE\s+FROM\s+posts\s+WHERE\s+id`).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), postID), common.ErrorNotFound)
}

func TestDeleteBySender(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE\s+FROM\s+posts\s+WHERE\s+sender\s*=\s*\$1`).
		WithArgs(sender).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteBySender(context.Background(), sender)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
