package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aeroperf/aeroperf/internal/config"
	"github.com/aeroperf/aeroperf/internal/storage/memory"
	postgresstorage "github.com/aeroperf/aeroperf/internal/storage/postgres"
	sqlitestorage "github.com/aeroperf/aeroperf/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, engineVersion string, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgresstorage.New(engineVersion, log)
	case "sqlite":
		if err := os.MkdirAll(cfg.SQLite.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite output directory: %w", err)
		}
		return sqlitestorage.New(sqlitestorage.Config{
			DumpInterval: cfg.SQLite.DumpInterval,
			DumpPath:     filepath.Join(cfg.SQLite.OutputDir, "aeroperf.db"),
		}, engineVersion, log)
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
