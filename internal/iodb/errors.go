package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
)

// ConnectionError is returned when PostgreSQL connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check your configuration file:
     <em>~/.config/gnweather/config.yaml</em>

<em>Connection settings:</em>
  Host: %s
  Port: %d
  Database: %s
  User: %s`

	vars := []any{
		host, port,
		host, user,
		host, port, database, user,
	}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// SQLiteOpenError is returned when the SQLite file cannot be
// opened or created.
func SQLiteOpenError(path string, err error) error {
	msg := `Cannot open SQLite database <em>%s</em>

<em>How to fix:</em>
  1. Check that the parent directory is writable
  2. Set <em>database.path</em> in the configuration file`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %q: %w", path, err),
	}
}

// UnknownDriverError is returned for unsupported database drivers.
func UnknownDriverError(driver string) error {
	msg := `Unknown database driver <em>%s</em>

Supported drivers: <em>sqlite</em>, <em>postgres</em>`

	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// NotConnectedError is returned when an operation is attempted
// before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Cannot verify database state"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError is returned when the existence check of a
// particular table fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// EmptyDatabaseError is returned when a command needs the schema,
// but the database has no tables.
func EmptyDatabaseError(database string) error {
	msg := `Database <em>%s</em> has no tables

<em>How to fix:</em>
  1. Create the database schema:
     <em>gnweather create</em>
  2. Load observations:
     <em>gnweather ingest --data-dir DIR</em>`

	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{database},
		Err: fmt.Errorf(
			"database %s has no tables, run 'gnweather create' first",
			database),
	}
}

// QueryTablesError is returned when listing tables fails.
func QueryTablesError(err error) error {
	msg := "Cannot list database tables"

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError is returned when reading table names fails.
func ScanTableError(err error) error {
	msg := "Cannot read database table names"

	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := `Cannot drop table <em>%s</em>

<em>How to fix:</em>
  1. Check database user has DROP permissions
  2. Close other connections to the database`

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
