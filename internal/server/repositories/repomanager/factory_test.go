package repomanager

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/users"
)

func TestNew_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageMemory}

	m, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer m.Close(context.Background())

	require.NoError(t, m.RunMigrations(context.Background()))
	assert.IsType(t, &users.MemoryRepository{}, m.Users())
	assert.Same(t, m.Posts(), m.Posts(), "memory repositories are shared")
}

func TestNew_UnknownStorage(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Storage: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}
