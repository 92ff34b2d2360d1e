package actions

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/uuid/v5"
)

const (
	envOutput      = "GITHUB_OUTPUT"
	envStepSummary = "GITHUB_STEP_SUMMARY"
)

// SetOutput publishes a step output. When GITHUB_OUTPUT is set the value is
// appended to that file with a random heredoc delimiter; otherwise the legacy
// set-output command is written to stdout.
func (r *Runtime) SetOutput(name, value string) error {
	if path := r.getenv(envOutput); path != "" {
		return r.appendFileCommand(path, name, value)
	}
	r.Issue("set-output", map[string]string{"name": name}, value)
	return nil
}

// AppendSummary appends markdown to the job summary when the runner provides one.
func (r *Runtime) AppendSummary(markdown string) error {
	path := r.getenv(envStepSummary)
	if path == "" {
		return nil
	}
	return appendFile(path, markdown+"\n")
}

func (r *Runtime) appendFileCommand(path, name, value string) error {
	msg, err := keyValueMessage(name, value)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return appendFile(path, msg)
}

func keyValueMessage(key, value string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFileCommand, err)
	}
	delimiter := "ghadelimiter_" + id.String()

	if strings.Contains(key, delimiter) || strings.Contains(value, delimiter) {
		return "", ErrDelimiterCollision
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter), nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFileCommand, err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %w", ErrWriteFileCommand, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFileCommand, err)
	}
	return nil
}
