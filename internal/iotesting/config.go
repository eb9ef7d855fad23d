// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gnweather/pkg/config"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the PostgreSQL database name used for all
	// integration tests. Tests never run against production databases.
	TestDatabaseName = "gnweather_test"
)

// GetTestConfig returns a PostgreSQL configuration suitable for
// integration tests. Connection settings come from defaults overridden
// by GNWEATHER_DATABASE_* environment variables, the database name is
// always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("GNWEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var opts []config.Option
	if s := v.GetString("database.host"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if i := v.GetInt("database.port"); i > 0 {
		opts = append(opts, config.OptDatabasePort(i))
	}
	if s := v.GetString("database.user"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := v.GetString("database.password"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := v.GetString("database.ssl_mode"); s != "" {
		opts = append(opts, config.OptDatabaseSSLMode(s))
	}

	cfg := config.New()
	cfg.Update(opts)

	cfg.Database.Driver = "postgres"
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration
// for PostgreSQL tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SQLiteConfig returns a configuration that keeps the SQLite database,
// logs and home directory inside a temporary test directory.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(dir),
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(filepath.Join(dir, "weather.db")),
		config.OptLogDestination("stderr"),
	})
	return cfg
}
