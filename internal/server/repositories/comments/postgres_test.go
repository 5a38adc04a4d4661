package comments

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/common"
	"github.com/dmitrijs2005/blogkeeper/internal/server/models"
)

const (
	commentID = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f"
	comment2  = "4d5e6f7a-8b9c-4d0e-9f1a-2b3c4d5e6f70"
	postID    = "1a2b3c4d-5e6f-4a1b-8c2d-3e4f5a6b7c8d"
	post2     = "2b3c4d5e-6f7a-4b2c-9d3e-4f5a6b7c8d9e"
	sender    = "8d7c6b5a-4f3e-4d2c-9b1a-0f9e8d7c6b5a"
)

var columns = []string{"id", "post_id", "content", "sender", "created_at", "updated_at"}

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

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+comments\s*\(post_id,\s*content,\s*sender\)`).
		WithArgs(postID, "hi", sender).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(commentID, postID, "hi", sender, now, now))

	c, err := repo.Create(context.Background(), &models.Comment{PostID: postID, Content: "hi", Sender: sender})
	require.NoError(t, err)
	assert.Equal(t, commentID, c.ID)
	assert.Equal(t, postID, c.PostID)
}

func TestCreate_MalformedPost(t *testing.T) {
	repo, _ := newRepoWithMock(t)

	_, err := repo.Create(context.Background(), &models.Comment{PostID: "x", Sender: sender})
	assert.ErrorIs(t, err, common.ErrMalformedID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM\s+comments\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(commentID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), commentID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	now := time.Now()

	t.Run("by post", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`FROM\s+comments\s+WHERE\s+post_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id$`).
			WithArgs(postID).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(commentID, postID, "a", sender, now, now).
				AddRow(comment2, postID, "b", sender, now, now))

		list, err := repo.List(context.Background(), postID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "a", list[0].Content)
	})

	t.Run("malformed post id", func(t *testing.T) {
		repo, _ := newRepoWithMock(t)

		_, err := repo.List(context.Background(), "nope")
		assert.ErrorIs(t, err, common.ErrMalformedID)
	})
}

func TestListIDsByPostIDs(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)SELECT\s+post_id,\s*string_agg\(id::text,\s*',' ORDER BY created_at, id\).*WHERE\s+post_id\s*=\s*ANY\(\$1::uuid\[\]\)\s+GROUP\s+BY\s+post_id`).
		WithArgs("{" + postID + "," + post2 + "}").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "ids"}).
			AddRow(postID, commentID+","+comment2))

	got, err := repo.ListIDsByPostIDs(context.Background(), []string{postID, post2})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{postID: {commentID, comment2}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListIDsByPostIDs_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	got, err := repo.ListIDsByPostIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`(?s)UPDATE\s+comments\s+SET\s+content\s*=\s*\$2`).
		WithArgs(commentID, "new").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Comment{ID: commentID, Content: "new"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteByPostIDs(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE\s+FROM\s+comments\s+WHERE\s+post_id\s*=\s*ANY\(\$1::uuid\[\]\)`).
		WithArgs("{" + postID + "}").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteByPostIDs(context.Background(), []string{postID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDeleteBySender(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE\s+FROM\s+comments\s+WHERE\s+sender\s*=\s*\$1`).
		WithArgs(sender).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.DeleteBySender(context.Background(), sender)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`DELETE\s+FROM\s+comments\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(commentID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), commentID))
}
