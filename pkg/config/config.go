// Package config provides configuration management for gnweather.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, path, host, port, user, password, database,
//     ssl_mode, batch_size
//   - Server: port, request_timeout_sec
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Ingest.DataDir, Ingest.ShowProgress (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNWEATHER_ prefix with underscores for nesting:
//
//	GNWEATHER_DATABASE_DRIVER=postgres
//	GNWEATHER_DATABASE_HOST=localhost
//	GNWEATHER_SERVER_PORT=8080
//	GNWEATHER_LOG_LEVEL=info
package config

// Config represents the complete gnweather configuration.
type Config struct {
	// Database contains storage connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Server contains settings of the HTTP API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Ingest contains settings specific to the ingest command.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains storage connection parameters.
type DatabaseConfig struct {
	// Driver selects the storage backend.
	// Valid values: "sqlite", "postgres".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Path is the SQLite database file. Ignored by PostgreSQL.
	// When empty, the CLI uses a file in the gnweather data directory.
	Path string `mapstructure:"path" yaml:"path"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of upsert statements sent to PostgreSQL
	// in one round trip during ingestion.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ServerConfig contains settings of the HTTP API.
type ServerConfig struct {
	// Port the HTTP server listens on.
	Port int `mapstructure:"port" yaml:"port"`

	// RequestTimeoutSec limits the time spent on a single request.
	RequestTimeoutSec int `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
}

// IngestConfig contains settings specific to the ingest command.
type IngestConfig struct {
	// DataDir is the directory with per-station observation files.
	DataDir string `mapstructure:"data_dir"`

	// ShowProgress enables a terminal progress bar during ingestion.
	ShowProgress bool `mapstructure:"show_progress"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gnweather",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Server: ServerConfig{
			Port:              8080,
			RequestTimeoutSec: 30,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
