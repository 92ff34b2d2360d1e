// Package writers opens the log destinations named by the log-output setting.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriterType represents the type of writer to create
type WriterType string

const (
	WriterTypeStdout WriterType = "stdout"
	WriterTypeStderr WriterType = "stderr"
	WriterTypeFile   WriterType = "file"
)

// ParseWriterType determines the writer type from an output string. Empty
// selects stderr so log lines never mix with workflow commands on stdout.
func ParseWriterType(output string) WriterType {
	switch output {
	case "", "stderr":
		return WriterTypeStderr
	case "stdout":
		return WriterTypeStdout
	default:
		return WriterTypeFile
	}
}

// Open returns a writer for output and a func that releases it. Supported
// values are "stderr" (or empty), "stdout", "file:///path" and plain paths.
// Parent directories of file paths are created.
func Open(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch ParseWriterType(output) {
	case WriterTypeStderr:
		return os.Stderr, noop, nil
	case WriterTypeStdout:
		return os.Stdout, noop, nil
	}

	if strings.Contains(output, "://") && !strings.HasPrefix(output, "file://") {
		return nil, nil, fmt.Errorf("unsupported output format: %s", output)
	}
	path := strings.TrimPrefix(output, "file://")

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return file, file.Close, nil
}
