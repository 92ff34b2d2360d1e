package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/atlanticdynamic/scriptstep/internal/client"
	"github.com/atlanticdynamic/scriptstep/internal/fancy"
	"github.com/atlanticdynamic/scriptstep/internal/result"
	"github.com/atlanticdynamic/scriptstep/internal/step"
	"github.com/urfave/cli/v3"
)

func validateCmd(runtime *actions.Runtime) *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"lint"},
		Usage:   "Build the client and compile the script without running it",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Show a tree view of the resolved configuration",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			run, closeLog, err := newRun(cmd, runtime)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			if err := run.Prepare(ctx); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			encoding, err := result.ParseEncoding(run.Inputs().ResultEncoding)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			w := cmd.Root().Writer
			fmt.Fprintln(w, fancy.ValidText("Configuration is valid"))
			if cmd.Bool("tree") {
				fmt.Fprintln(w, renderRunTree(run, encoding))
			}
			return nil
		},
	}
}

func renderRunTree(run *step.Run, encoding result.Encoding) string {
	cfg := run.ClientConfig()
	in := run.Inputs()

	timeout := in.Timeout
	if timeout == "" {
		timeout = "none"
	}

	return fancy.SectionTree(
		"Run "+run.ID.String(),
		fancy.Section{Title: "Client", Fields: clientFields(cfg)},
		fancy.Section{Title: "Script", Fields: []fancy.Field{
			{Key: "executor", Value: fancy.EngineText(fmt.Sprint(run.Executor()))},
			{Key: "result-encoding", Value: string(encoding)},
			{Key: "timeout", Value: timeout},
		}},
	).String()
}

func clientFields(cfg client.Config) []fancy.Field {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "default"
	}
	codes := make([]string, len(cfg.Retry.DoNotRetry))
	for i, c := range cfg.Retry.DoNotRetry {
		codes[i] = strconv.Itoa(c)
	}
	return []fancy.Field{
		{Key: "base-url", Value: fancy.PathText(baseURL)},
		{Key: "user-agent", Value: cfg.UserAgent},
		{Key: "previews", Value: strings.Join(cfg.Previews, ", ")},
		{Key: "retries", Value: fancy.RetryText(strconv.Itoa(cfg.Request.Retries))},
		{Key: "do-not-retry", Value: fancy.RetryText(strings.Join(codes, ", "))},
		{Key: "debug", Value: strconv.FormatBool(cfg.Logger != nil)},
	}
}
