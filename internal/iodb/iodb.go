// Package iodb implements database operations for the two supported
// storage backends: PostgreSQL through pgxpool and SQLite through the
// pure-Go modernc driver. This is an impure I/O package that implements
// contracts defined in pkg/.
package iodb

import (
	"github.com/gnames/gnweather/pkg/db"
)

const (
	// DriverSQLite names the embedded SQLite backend.
	DriverSQLite = "sqlite"
	// DriverPostgres names the PostgreSQL backend.
	DriverPostgres = "postgres"
)

// New creates a not yet connected operator for the given driver name.
func New(driver string) (db.Operator, error) {
	switch driver {
	case DriverSQLite:
		return NewSQLiteOperator(), nil
	case DriverPostgres:
		return NewPgxOperator(), nil
	default:
		return nil, UnknownDriverError(driver)
	}
}
