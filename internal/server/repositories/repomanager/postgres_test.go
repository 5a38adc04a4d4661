package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/comments"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestPostgresManager_ReturnsConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager(db)

	assert.IsType(t, &users.PostgresRepository{}, m.Users())
	assert.IsType(t, &refreshtokens.PostgresRepository{}, m.RefreshTokens())
	assert.IsType(t, &posts.PostgresRepository{}, m.Posts())
	assert.IsType(t, &comments.PostgresRepository{}, m.Comments())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	err := m.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}

func TestPostgresManager_Close(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	m := NewPostgresRepositoryManager(db)
	require.NoError(t, m.Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
