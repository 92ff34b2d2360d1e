// Package toolkit provides the process, glob and filesystem helpers exposed
// to scripts alongside the API client.
package toolkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ExecOptions tune a single command execution.
type ExecOptions struct {
	Dir              string
	Env              []string
	Input            string
	IgnoreReturnCode bool
	Timeout          time.Duration
}

// ExecOutput is the captured result of a command.
type ExecOutput struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Exec runs commands on the host.
type Exec struct {
	logger *slog.Logger
}

// NewExec creates an Exec that logs each command at debug level.
func NewExec(logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{logger: logger.WithGroup("exec")}
}

// Run executes name with args and captures its output. A non-zero exit code is
// returned as ErrExitCode unless opts.IgnoreReturnCode is set; the output is
// populated in both cases.
func (e *Exec) Run(ctx context.Context, name string, args []string, opts ExecOptions) (ExecOutput, error) {
	if name == "" {
		return ExecOutput{}, ErrEmptyCommand
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	if opts.Input != "" {
		cmd.Stdin = strings.NewReader(opts.Input)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("Running command", "name", name, "args", args, "dir", opts.Dir)
	start := time.Now()
	err := cmd.Run()

	out := ExecOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		if !opts.IgnoreReturnCode {
			return out, fmt.Errorf("%w: %s failed with exit code %d", ErrExitCode, name, out.ExitCode)
		}
	default:
		out.ExitCode = -1
		return out, fmt.Errorf("%w: failed to run %s: %w", ErrToolkit, name, err)
	}

	e.logger.Debug("Command finished", "name", name, "exit_code", out.ExitCode, "duration", out.Duration)
	return out, nil
}
