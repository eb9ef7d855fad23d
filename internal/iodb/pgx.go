package iodb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gnames/gnweather/pkg/config"
	"github.com/gnames/gnweather/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// pgxOperator implements db.PoolOperator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

// NewPgxOperator creates a new PostgreSQL operator
// (without connecting).
func NewPgxOperator() db.PoolOperator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	p.db = stdlib.OpenDBFromPool(pool)
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.db != nil {
		_ = p.db.Close()
		p.db = nil
	}
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

func (p *pgxOperator) Driver() string {
	return DriverPostgres
}

// DB returns a database/sql view of the pool, used by GORM.
func (p *pgxOperator) DB() *sql.DB {
	return p.db
}

// Pool returns the underlying pgxpool.Pool for batches
// and advisory locks.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists checks if a table exists in the current
// database.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables in the
// public schema.
func (p *pgxOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`

	var hasTables bool
	err := p.pool.QueryRow(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError(err)
	}

	return hasTables, nil
}

// DropAllTables drops all tables in the public schema.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return QueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return ScanTableError(err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return ScanTableError(err)
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf(
			"DROP TABLE IF EXISTS %s CASCADE", table)
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}
