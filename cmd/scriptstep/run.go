package main

import (
	"context"
	"log/slog"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/atlanticdynamic/scriptstep/internal/step"
	"github.com/urfave/cli/v3"
)

// newRun reads the inputs, installs the log handler as the default logger and
// creates the run. The returned func releases the log destination.
func newRun(cmd *cli.Command, runtime *actions.Runtime) (*step.Run, func() error, error) {
	in, err := readInputs(cmd, runtime)
	if err != nil {
		return nil, nil, err
	}

	handler, closeLog, err := newLogHandler(in, runtime, cmd.String(flagLogOutput))
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(slog.New(handler))

	run, err := step.New(step.Config{
		Inputs:  in,
		Runtime: runtime,
		Handler: handler,
	})
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}
	return run, closeLog, nil
}

func runAction(runtime *actions.Runtime) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		run, closeLog, err := newRun(cmd, runtime)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()

		if _, err := run.Execute(ctx); err != nil {
			return err
		}
		slog.Debug("Step finished", "run_id", run.ID.String(), "state", run.GetState())
		return nil
	}
}
