// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnweather/pkg/config"
	"github.com/lmittmann/tint"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "gnweather.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates
// fresh file.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	writer, err := destination(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(newHandler(writer, cfg)))
	return nil
}

func destination(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return nil, CreateLogFileError(logPath, err)
		}
		return file, nil
	default:
		return os.Stderr, nil
	}
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := parseLevel(cfg.Level)

	switch cfg.Format {
	case "text":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    w != os.Stderr && w != os.Stdout,
		})
	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
