// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package.
// PostgreSQL schema is maintained by GORM AutoMigrate, SQLite schema
// by DDL generated from the same models.
package ioschema

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnweather/pkg/db"
	"github.com/gnames/gnweather/pkg/lifecycle"
	"github.com/gnames/gnweather/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema. For PostgreSQL it also
// sets "C" collation on station identifiers, so they sort by bytes
// the same way SQLite sorts them.
func (m *manager) Create(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	if m.operator.Driver() != "postgres" {
		if err := m.execDDL(ctx); err != nil {
			return CreateSchemaError(err)
		}
		return nil
	}

	if err := m.autoMigrate(ctx); err != nil {
		return CreateSchemaError(err)
	}

	return m.setCollation(ctx)
}

// Migrate updates the database schema to the latest version.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	if m.operator.Driver() != "postgres" {
		if err := m.execDDL(ctx); err != nil {
			return MigrateSchemaError(err)
		}
		return nil
	}

	if err := m.autoMigrate(ctx); err != nil {
		return MigrateSchemaError(err)
	}

	return m.setCollation(ctx)
}

// Analyze updates planner statistics of the weather tables. PostgreSQL
// also reclaims dead rows left by upserts. VACUUM cannot run inside
// a transaction.
func (m *manager) Analyze(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	start := time.Now()
	stmts := []string{"ANALYZE"}
	if m.operator.Driver() == "postgres" {
		stmts = stmts[:0]
		for _, table := range []string{
			schema.Station{}.TableName(),
			schema.Observation{}.TableName(),
		} {
			stmts = append(stmts, "VACUUM ANALYZE "+table)
		}
	}

	for _, q := range stmts {
		if _, err := m.operator.DB().ExecContext(ctx, q); err != nil {
			return AnalyzeError(err)
		}
	}

	slog.Info("Planner statistics updated",
		"duration", time.Since(start).String())
	return nil
}

func (m *manager) autoMigrate(ctx context.Context) error {
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: m.operator.DB()}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	return schema.Migrate(gormDB.WithContext(ctx))
}

// execDDL runs idempotent CREATE statements in one transaction.
func (m *manager) execDDL(ctx context.Context) error {
	tx, err := m.operator.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range schema.AllDDL() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// setCollation sets "C" collation on station identifier columns.
// The referenced column goes first.
func (m *manager) setCollation(ctx context.Context) error {
	type columnDef struct {
		table, column string
	}

	columns := []columnDef{
		{schema.Station{}.TableName(), "id"},
		{schema.Observation{}.TableName(), "station_id"},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(%d) COLLATE "C"`

	for _, col := range columns {
		q := formatCollationSQL(qStr, col.table,
			col.column, schema.StationIDMaxLen)
		if _, err := m.operator.DB().ExecContext(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}
