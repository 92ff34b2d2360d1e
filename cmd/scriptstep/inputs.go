package main

import (
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/atlanticdynamic/scriptstep/internal/config"
	"github.com/atlanticdynamic/scriptstep/internal/logging"
	"github.com/atlanticdynamic/scriptstep/internal/logging/writers"
	"github.com/urfave/cli/v3"
)

const (
	flagConfig    = "config"
	flagLogOutput = "log-output"
)

var inputUsage = map[string]string{
	config.InputGitHubToken:            "Token used to authenticate API requests",
	config.InputDebug:                  "Log every API request and response (true or false)",
	config.InputUserAgent:              "Base user agent for API requests",
	config.InputPreviews:               "Comma-separated API preview names",
	config.InputBaseURL:                "API base URL, defaults to GITHUB_API_URL",
	config.InputRetries:                "Number of retries for failed requests",
	config.InputRetryExemptStatusCodes: "Comma-separated status codes that are never retried",
	config.InputScript:                 "Inline script to run",
	config.InputScriptFile:             "Script file to run, relative to the workspace",
	config.InputResultEncoding:         "Result encoding: json or string",
	config.InputEngine:                 "Script engine: risor or starlark",
	config.InputTimeout:                "Script deadline, a duration or whole seconds",
	config.InputScriptData:             "JSON object exposed to the script as inputs",
	config.InputLogFormat:              "Log format: text, json or actions",
	config.InputLogLevel:               "Log level: debug, info, warn or error",
}

func appFlags() []cli.Flag {
	names := config.Names()
	flags := make([]cli.Flag, 0, len(names)+2)
	flags = append(flags,
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "Path to a TOML or YAML file supplying inputs not set elsewhere",
			Sources: cli.EnvVars("SCRIPTSTEP_CONFIG"),
		},
		&cli.StringFlag{
			Name:  flagLogOutput,
			Usage: "Log destination: stderr, stdout or a file path",
		},
	)
	for _, name := range names {
		flags = append(flags, &cli.StringFlag{
			Name:  name,
			Usage: fmt.Sprintf("%s (env %s)", inputUsage[name], config.EnvVar(name)),
		})
	}
	return flags
}

// readInputs collects the inputs in precedence order: flags, then INPUT_
// variables, then the config file.
func readInputs(cmd *cli.Command, runtime *actions.Runtime) (*config.Inputs, error) {
	in := &config.Inputs{}
	for _, name := range config.Names() {
		if !cmd.IsSet(name) {
			continue
		}
		if err := in.Set(name, cmd.String(name)); err != nil {
			return nil, err
		}
	}
	in.Merge(config.FromEnv(runtime.Getenv))

	if path := cmd.String(flagConfig); path != "" {
		lookup := func(key string) (string, bool) {
			v := runtime.Getenv(key)
			return v, v != ""
		}
		fromFile, err := config.LoadFile(path, lookup)
		if err != nil {
			return nil, err
		}
		in.Merge(fromFile)
	}
	return in, nil
}

// newLogHandler builds the handler for the run. Malformed log settings fall
// back to defaults here and are reported by input validation.
func newLogHandler(in *config.Inputs, runtime *actions.Runtime, output string) (slog.Handler, func() error, error) {
	format, err := in.LogFormatValue()
	if err != nil {
		format = config.LogFormatUnspecified
	}
	if format == config.LogFormatUnspecified {
		format = config.LogFormatText
		if runtime.Getenv("GITHUB_ACTIONS") == "true" {
			format = config.LogFormatActions
		}
	}

	level, err := in.LogLevelValue()
	if err != nil {
		level = slog.LevelInfo
	}
	if debug, _ := in.DebugEnabled(); debug || runtime.IsDebug() {
		level = min(level, slog.LevelDebug)
	}

	w, closer, err := writers.Open(output)
	if err != nil {
		return nil, nil, err
	}
	handler, err := logging.NewHandler(string(format), level, w, runtime)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return handler, closer, nil
}
