package database

import (
	"fmt"
	"os"
	"path/filepath"

	"sislog/internal/config"
)

// NewDatabaseFromConfig creates a database based on the database config type.
// Memory databases are migrated on creation; sqlite databases are expected
// to be migrated with "sislog db migrate".
func NewDatabaseFromConfig(cfg config.DatabaseConfig, stationID string) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dbPath := filepath.Join(cfg.DataDir, stationID+".db")
		return NewSQLiteDatabase(dbPath)
	case "memory":
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			return nil, err
		}
		if _, err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
