package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
)

// New opens the backend selected by cfg.Storage.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		m, err := OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.StorageMongo:
		m, err := OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
