package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogFormat represents the logging output format
type LogFormat string

const (
	LogFormatUnspecified LogFormat = ""
	LogFormatText        LogFormat = "text"
	LogFormatJSON        LogFormat = "json"
	// LogFormatActions renders records as workflow commands.
	LogFormatActions LogFormat = "actions"
)

// LogFormatValue parses the log-format input. Empty selects
// LogFormatUnspecified, leaving the choice to the caller.
func (in *Inputs) LogFormatValue() (LogFormat, error) {
	switch f := LogFormat(strings.ToLower(strings.TrimSpace(in.LogFormat))); f {
	case LogFormatUnspecified, LogFormatText, LogFormatJSON, LogFormatActions:
		return f, nil
	case "txt":
		return LogFormatText, nil
	default:
		return LogFormatUnspecified, fmt.Errorf("%w: %s", ErrInvalidLogFormat, in.LogFormat)
	}
}

// LogLevelValue parses the log-level input. Empty is info.
func (in *Inputs) LogLevelValue() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(in.LogLevel)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLogLevel, in.LogLevel)
	}
}
