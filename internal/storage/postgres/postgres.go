// Package postgresstorage implements the storage.Backend interface using
// GORM/PostgreSQL. It wraps the GORM backend via composition — the only
// Postgres-specific concerns are establishing and validating the connection
// and degrading to a local SQLite database when Postgres is unreachable.
package postgresstorage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/aeroperf/aeroperf/internal/database"
	gormstorage "github.com/aeroperf/aeroperf/internal/storage/gorm"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Backend wraps the GORM backend for Postgres-specific behavior.
type Backend struct {
	*gormstorage.Backend
	mgr *database.Manager
	log zerolog.Logger
}

// New creates a new Postgres storage backend using the viper db.* settings.
// When the Postgres connection cannot be established or validated, the
// backend falls back to an in-memory SQLite database with the reduced
// schema, dumped to disk on Close.
func New(engineVersion string, log zerolog.Logger) (*Backend, error) {
	mgr := database.NewManager(log)
	if err := mgr.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if mgr.ShouldSaveLocal {
		mgr.SqliteFilePath = filepath.Join(
			viper.GetString("storage.sqlite.outputDir"),
			fmt.Sprintf("aeroperf_fallback_%s.db", time.Now().UTC().Format("20060102_150405")),
		)
		log.Warn().Str("dumpPath", mgr.SqliteFilePath).
			Msg("Postgres unavailable, saving to local SQLite instead")
	}

	gormBackend := gormstorage.New(gormstorage.Dependencies{
		DB:            mgr.DB,
		Logger:        log,
		EngineVersion: engineVersion,
		SQLiteSchema:  mgr.ShouldSaveLocal,
	})

	return &Backend{
		Backend: gormBackend,
		mgr:     mgr,
		log:     log,
	}, nil
}

// Close shuts down the embedded GORM backend and, when running on the SQLite
// fallback, writes the in-memory database to disk.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	if b.mgr.ShouldSaveLocal {
		return b.mgr.DumpMemoryToDisk()
	}
	return nil
}
