package db

import (
	"context"
	"database/sql"

	"github.com/gnames/gnweather/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes a database/sql
// handle for high-level lifecycle components (SchemaManager, Store) to
// execute their specialized SQL operations internally.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connections.
	Close() error

	// Driver returns the name of the storage backend
	// ("sqlite" or "postgres").
	Driver() string

	// DB returns a database/sql handle backed by the operator's
	// connections. Returns nil before Connect.
	DB() *sql.DB

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any user tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all user tables.
	// Used during schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}

// PoolOperator is an Operator backed by pgxpool. Components use the pool
// for pgx-specific features such as batches.
type PoolOperator interface {
	Operator

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool
}
