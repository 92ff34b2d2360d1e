// Package logging builds the slog handlers used by the step: a charmbracelet
// text handler for terminals, a JSON handler, and a handler that renders
// records as workflow commands on the runner.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Format names accepted by NewHandler.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatActions = "actions"
)

// ParseLevel converts a level name to a slog.Level. "trace" is an alias for debug.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "trace", "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported log level: %s", name)
	}
}

// SetupHandlerText configures a charmbracelet text handler. Debug level adds
// timestamps.
func SetupHandlerText(level slog.Level, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: level <= slog.LevelDebug,
		ReportCaller:    level < slog.LevelDebug,
		Level:           log.Level(level),
	})
}

// SetupHandlerJSON configures a JSON slog handler.
func SetupHandlerJSON(level slog.Level, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     level,
		AddSource: level < slog.LevelDebug,
	})
}

// NewHandler returns the handler for a format name. The actions format needs
// a CommandWriter; text and json write to writer.
func NewHandler(format string, level slog.Level, writer io.Writer, commands CommandWriter) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case "", FormatText, "txt":
		return SetupHandlerText(level, writer), nil
	case FormatJSON:
		return SetupHandlerJSON(level, writer), nil
	case FormatActions:
		if commands == nil {
			return nil, fmt.Errorf("actions log format requires a command writer")
		}
		return NewActionsHandler(commands, level), nil
	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

// SetupLogger sets the default logger to a text handler at the given level.
func SetupLogger(level slog.Level) {
	slog.SetDefault(slog.New(SetupHandlerText(level, nil)))
}
