package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnweather"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnweather by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for application data.
// Returns ~/.local/share/gnweather by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnweather/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnweather/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath returns the default location of the SQLite database.
// Returns ~/.local/share/gnweather/weather.db by default.
func SQLitePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "weather.db")
}
