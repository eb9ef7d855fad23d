package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// PostgreSQL schema is handled by GORM AutoMigrate, SQLite schema by DDL
// generated from the same models.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema.
	// If tables already exist, behavior depends on user confirmation
	// via DropAllTables.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context) error

	// Analyze refreshes query planner statistics after a bulk load.
	Analyze(ctx context.Context) error
}
