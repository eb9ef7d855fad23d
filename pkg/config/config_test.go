package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gnweather/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnweather"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "gnweather"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnweather", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnweather", "config.yaml"),
		},
		{
			msg: "sqlite file",
			fn:  config.SQLitePath,
			res: filepath.Join(tempHome, ".local", "share", "gnweather", "weather.db"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Empty(t, cfg.Database.Path)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "gnweather", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 5_000, cfg.Database.BatchSize)

		// Server defaults
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30, cfg.Server.RequestTimeoutSec)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// Runtime-only fields
		assert.Empty(t, cfg.Ingest.DataDir)
		assert.False(t, cfg.Ingest.ShowProgress)
		assert.Empty(t, cfg.HomeDir)
	})
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets postgres",
			input:    "postgres",
			expected: "postgres",
		},
		{
			name:     "normalizes case and whitespace",
			input:    "  PostgreS ",
			expected: "postgres",
		},
		{
			name:     "ignores unknown driver",
			input:    "mysql",
			expected: "sqlite", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseDriver(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost", // Should keep default
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionPositiveInts(t *testing.T) {
	tests := []struct {
		name     string
		opt      func(int) config.Option
		get      func(*config.Config) int
		input    int
		expected int
	}{
		{
			name:     "port",
			opt:      config.OptDatabasePort,
			get:      func(c *config.Config) int { return c.Database.Port },
			input:    6543,
			expected: 6543,
		},
		{
			name:     "negative port",
			opt:      config.OptDatabasePort,
			get:      func(c *config.Config) int { return c.Database.Port },
			input:    -100,
			expected: 5432,
		},
		{
			name:     "batch size",
			opt:      config.OptDatabaseBatchSize,
			get:      func(c *config.Config) int { return c.Database.BatchSize },
			input:    100,
			expected: 100,
		},
		{
			name:     "zero batch size",
			opt:      config.OptDatabaseBatchSize,
			get:      func(c *config.Config) int { return c.Database.BatchSize },
			input:    0,
			expected: 5_000,
		},
		{
			name:     "server port",
			opt:      config.OptServerPort,
			get:      func(c *config.Config) int { return c.Server.Port },
			input:    5000,
			expected: 5000,
		},
		{
			name:     "request timeout",
			opt:      config.OptServerRequestTimeoutSec,
			get:      func(c *config.Config) int { return c.Server.RequestTimeoutSec },
			input:    0,
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.expected, tt.get(cfg))
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid ssl mode - require",
			input:    "require",
			expected: "require",
		},
		{
			name:     "normalizes to lowercase",
			input:    "VERIFY-FULL",
			expected: "verify-full",
		},
		{
			name:     "ignores invalid value",
			input:    "invalid",
			expected: "disable", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionLog(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat("tint"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tint", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("trace"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("stdin"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tint", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptionIngest(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptIngestDataDir(" /data/stations "),
		config.OptIngestShowProgress(true),
	})
	assert.Equal(t, "/data/stations", cfg.Ingest.DataDir)
	assert.True(t, cfg.Ingest.ShowProgress)

	cfg.Update([]config.Option{config.OptIngestDataDir("")})
	assert.Equal(t, "/data/stations", cfg.Ingest.DataDir)
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptDatabaseDriver("postgres"),
		config.OptDatabasePath("/tmp/w.db"),
		config.OptDatabaseHost("pg.local"),
		config.OptDatabasePort(6000),
		config.OptDatabaseBatchSize(42),
		config.OptServerPort(9000),
		config.OptServerRequestTimeoutSec(5),
		config.OptLogLevel("warn"),
		config.OptIngestDataDir("/data"),
		config.OptHomeDir("/home/user"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Database, dst.Database)
	assert.Equal(t, src.Server, dst.Server)
	assert.Equal(t, src.Log, dst.Log)

	// runtime-only fields are not round-tripped
	assert.Empty(t, dst.Ingest.DataDir)
	assert.Empty(t, dst.HomeDir)
}
