package config

import (
	"errors"
	"fmt"
)

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("config: database dsn is required for postgres storage")
		}
	case StorageMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return errors.New("config: mongo uri and database are required for mongo storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}

	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		return errors.New("config: token secrets must not be empty")
	}
	if c.AccessTokenValidityDuration <= 0 || c.RefreshTokenValidityDuration <= 0 {
		return errors.New("config: token validity durations must be positive")
	}
	return nil
}
