package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnweather/pkg/errcode"
)

// NotConnectedError is returned when a schema operation is
// attempted before the operator is connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError is returned when GORM cannot wrap
// the PostgreSQL connection.
func GORMConnectionError(err error) error {
	msg := `Cannot open GORM session on PostgreSQL

<em>How to fix:</em>
  1. Ensure the database is reachable
  2. Check <em>database</em> section of the configuration file`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError is returned when weather tables cannot be created.
func CreateSchemaError(err error) error {
	msg := `Cannot create weather tables

<em>Possible causes:</em>
  - Insufficient database permissions
  - Database file is read-only

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError is returned when weather tables cannot be
// brought to the current version.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate weather tables

<em>How to fix:</em>
  1. Check database user has ALTER permissions
  2. If the schema is broken, run <em>gnweather create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// CollationError is returned when "C" collation cannot be set
// on a column.
func CollationError(table, column string, err error) error {
	msg := `Cannot set collation on <em>%s.%s</em>`

	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  msg,
		Vars: []any{table, column},
		Err: fmt.Errorf(
			"failed to set collation on %s.%s: %w",
			table, column, err),
	}
}

// AnalyzeError is returned when planner statistics cannot be updated.
func AnalyzeError(err error) error {
	msg := "Cannot update planner statistics"

	return &gn.Error{
		Code: errcode.SchemaAnalyzeError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to analyze tables: %w", err),
	}
}
