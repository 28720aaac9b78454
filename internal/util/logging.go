package util

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger owns the JSON log handler and its file. The terminal belongs to
// the TUI, so records go to a file only.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
}

// NewLogger opens path for appending, creating parent directories. When the
// file cannot be opened the logger writes to io.Discard rather than the
// terminal.
func NewLogger(path, level string) *Logger {
	l := &Logger{level: &slog.LevelVar{}}
	var w io.Writer = io.Discard
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				l.file = f
				w = f
			}
		}
	}
	l.Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l.level}))
	l.SetRawLogLevel(level)
	return l
}

// NewWriterLogger logs to w, used by tests and the routes command.
func NewWriterLogger(w io.Writer, level string) *Logger {
	l := &Logger{level: &slog.LevelVar{}}
	l.Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l.level}))
	l.SetRawLogLevel(level)
	return l
}

// SetRawLogLevel accepts debug, info, warn(ing) or error; anything else is info.
func (l *Logger) SetRawLogLevel(raw string) {
	l.level.Set(ParseLevel(raw))
}

// Level returns the current threshold.
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close closes the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
