package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gnweather/internal/iodb"
	"github.com/gnames/gnweather/internal/ioschema"
	"github.com/gnames/gnweather/pkg/db"
)

// ConnectSQLite opens a fresh SQLite database in a temporary directory.
// The connection is closed when the test finishes.
func ConnectSQLite(t *testing.T) db.Operator {
	t.Helper()

	cfg := SQLiteConfig(t)
	op := iodb.NewSQLiteOperator()
	if err := op.Connect(context.Background(), &cfg.Database); err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })

	return op
}

// ConnectPostgres connects to the PostgreSQL test database. The test is
// skipped in short mode or when the server is not reachable.
func ConnectPostgres(t *testing.T) db.PoolOperator {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, GetTestDatabaseConfig()); err != nil {
		t.Skipf("PostgreSQL test database is not available: %v", err)
	}
	t.Cleanup(func() { _ = op.Close() })

	return op
}

// SetupSQLite returns a connected SQLite operator with the weather
// schema in place.
func SetupSQLite(t *testing.T) db.Operator {
	t.Helper()

	op := ConnectSQLite(t)
	createSchema(t, op)
	return op
}

// SetupPostgres returns a connected PostgreSQL operator with a freshly
// recreated weather schema.
func SetupPostgres(t *testing.T) db.PoolOperator {
	t.Helper()

	op := ConnectPostgres(t)
	if err := op.DropAllTables(context.Background()); err != nil {
		t.Fatalf("Failed to clean test database: %v", err)
	}
	createSchema(t, op)
	return op
}

func createSchema(t *testing.T, op db.Operator) {
	t.Helper()

	err := ioschema.NewManager(op).Create(context.Background())
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
}

// WriteFile writes content into dir/name and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
