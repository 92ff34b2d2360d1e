package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runtime := actions.New()

	err := newApp(runtime).Run(ctx, os.Args)
	stop()
	if err != nil {
		os.Exit(handleError(runtime, err))
	}
}

func newApp(runtime *actions.Runtime) *cli.Command {
	return &cli.Command{
		Name:    "scriptstep",
		Version: Version,
		Usage:   "Run a script against the GitHub API and publish its result as a step output",
		Flags:   appFlags(),
		Action:  runAction(runtime),
		Commands: []*cli.Command{
			validateCmd(runtime),
			versionCmd,
		},
	}
}

// handleError reports an error that escaped the command and returns the
// process exit code.
func handleError(runtime *actions.Runtime, err error) int {
	slog.Error("Unhandled error", "error", err)
	runtime.SetFailed("Unhandled error: " + err.Error())
	return 1
}
