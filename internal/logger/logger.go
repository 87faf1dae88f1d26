package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 14
)

// New builds a logger without touching the process-wide default. With an empty file it
// writes colored text to stderr; otherwise JSON lines to a rotating file.
func New(level, file string) (*slog.Logger, error) {
	return newLogger(os.Stderr, level, file)
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(level, file string) (*slog.Logger, error) {
	logger, err := New(level, file)
	slog.SetDefault(logger)
	return logger, err
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLogger(stderr io.Writer, level, file string) (*slog.Logger, error) {
	logLevel := ParseLevel(level)

	path := strings.TrimSpace(file)
	if path == "" {
		handler := tint.NewHandler(stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.TimeOnly,
		})
		return slog.New(handler), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return slog.New(tint.NewHandler(stderr, &tint.Options{Level: logLevel, TimeFormat: time.TimeOnly})), err
	}

	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: logLevel})), nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
