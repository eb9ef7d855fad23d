package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/gnweather/pkg/config"
	"github.com/gnames/gnweather/pkg/db"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator interface on top of
// an embedded SQLite file.
type sqliteOperator struct {
	path string
	db   *sql.DB
}

// NewSQLiteOperator creates a new SQLite operator (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// sqliteDSN enables foreign keys and WAL for every pooled connection.
// Write transactions take the RESERVED lock on BEGIN, so concurrent
// writers wait on busy_timeout instead of failing on upgrade.
func sqliteDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"+
			"&_pragma=busy_timeout(5000)&_txlock=immediate",
		path,
	)
}

// Connect opens (and creates if needed) the SQLite database file.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	if cfg.Path == "" {
		return SQLiteOpenError(cfg.Path,
			fmt.Errorf("database path is empty"))
	}

	if err := gnsys.MakeDir(filepath.Dir(cfg.Path)); err != nil {
		return SQLiteOpenError(cfg.Path, err)
	}

	sqlDB, err := sql.Open("sqlite", sqliteDSN(cfg.Path))
	if err != nil {
		return SQLiteOpenError(cfg.Path, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return SQLiteOpenError(cfg.Path, err)
	}

	s.path = cfg.Path
	s.db = sqlDB
	return nil
}

// Close releases the database file.
func (s *sqliteOperator) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *sqliteOperator) Driver() string {
	return DriverSQLite
}

func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

// TableExists checks if a table exists in the database file.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`

	var n int
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&n)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return n > 0, nil
}

// HasTables checks if the database has any user tables.
func (s *sqliteOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`

	var n int
	err := s.db.QueryRowContext(ctx, query).Scan(&n)
	if err != nil {
		return false, TableCheckError(err)
	}

	return n > 0, nil
}

// DropAllTables drops all user tables. Tables are dropped in name order,
// referencing tables of this schema sort before the referenced ones.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}

	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return QueryTablesError(err)
	}

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			rows.Close()
			return ScanTableError(err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return ScanTableError(err)
	}
	rows.Close()

	for _, table := range tables {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %q", table)
		if _, err := s.db.ExecContext(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}
