// Package config holds the step inputs and the rules for reading them from
// flags, the environment and optional config files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Input names as declared by the action.
const (
	InputGitHubToken            = "github-token"
	InputDebug                  = "debug"
	InputUserAgent              = "user-agent"
	InputPreviews               = "previews"
	InputBaseURL                = "base-url"
	InputRetries                = "retries"
	InputRetryExemptStatusCodes = "retry-exempt-status-codes"
	InputScript                 = "script"
	InputScriptFile             = "script-file"
	InputResultEncoding         = "result-encoding"
	InputEngine                 = "engine"
	InputTimeout                = "timeout"
	InputScriptData             = "script-data"
	InputLogFormat              = "log-format"
	InputLogLevel               = "log-level"
)

// Inputs is the flat set of named string inputs. An empty value means the
// input was not supplied.
type Inputs struct {
	GitHubToken            string `env_interpolation:"yes"`
	Debug                  string
	UserAgent              string `env_interpolation:"yes"`
	Previews               string
	BaseURL                string `env_interpolation:"yes"`
	Retries                string `env_interpolation:"yes"`
	RetryExemptStatusCodes string
	Script                 string `env_interpolation:"no"`
	ScriptFile             string `env_interpolation:"yes"`
	ResultEncoding         string
	Engine                 string
	Timeout                string `env_interpolation:"yes"`
	ScriptData             string `env_interpolation:"no"`
	LogFormat              string
	LogLevel               string
}

type field struct {
	name string
	ptr  *string
}

func (in *Inputs) fields() []field {
	return []field{
		{InputGitHubToken, &in.GitHubToken},
		{InputDebug, &in.Debug},
		{InputUserAgent, &in.UserAgent},
		{InputPreviews, &in.Previews},
		{InputBaseURL, &in.BaseURL},
		{InputRetries, &in.Retries},
		{InputRetryExemptStatusCodes, &in.RetryExemptStatusCodes},
		{InputScript, &in.Script},
		{InputScriptFile, &in.ScriptFile},
		{InputResultEncoding, &in.ResultEncoding},
		{InputEngine, &in.Engine},
		{InputTimeout, &in.Timeout},
		{InputScriptData, &in.ScriptData},
		{InputLogFormat, &in.LogFormat},
		{InputLogLevel, &in.LogLevel},
	}
}

// Names returns every input name in declaration order.
func Names() []string {
	var in Inputs
	fields := in.fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// Get returns the value of a named input.
func (in *Inputs) Get(name string) (string, error) {
	for _, f := range in.fields() {
		if f.name == name {
			return *f.ptr, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownInput, name)
}

// Set assigns a named input.
func (in *Inputs) Set(name, value string) error {
	for _, f := range in.fields() {
		if f.name == name {
			*f.ptr = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownInput, name)
}

// Merge fills every empty input from fallback. Supplied values always win.
func (in *Inputs) Merge(fallback *Inputs) {
	if fallback == nil {
		return
	}
	theirs := fallback.fields()
	for i, f := range in.fields() {
		if *f.ptr == "" {
			*f.ptr = *theirs[i].ptr
		}
	}
}

// Validate reports every missing or malformed input at once.
func (in *Inputs) Validate() error {
	var errs []error

	if in.GitHubToken == "" {
		errs = append(errs, missing(InputGitHubToken))
	}
	switch {
	case in.Script == "" && in.ScriptFile == "":
		errs = append(errs, missing(InputScript))
	case in.Script != "" && in.ScriptFile != "":
		errs = append(errs, fmt.Errorf("%w: %q and %q cannot both be set", ErrConflictingInputs, InputScript, InputScriptFile))
	}
	if _, err := in.DebugEnabled(); err != nil {
		errs = append(errs, err)
	}
	if _, err := in.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, err := in.LogFormatValue(); err != nil {
		errs = append(errs, err)
	}
	if _, err := in.LogLevelValue(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, name)
}

// DebugEnabled parses the debug input. Empty is false.
func (in *Inputs) DebugEnabled() (bool, error) {
	return ParseBool(InputDebug, in.Debug)
}

// ParseBool accepts exactly the YAML 1.2 core schema booleans, the same set
// the Actions toolkit accepts. An empty value is false.
func ParseBool(name, value string) (bool, error) {
	switch value {
	case "":
		return false, nil
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	default:
		return false, fmt.Errorf(
			"%w: %s\nSupport boolean input list: `true | True | TRUE | false | False | FALSE`",
			ErrInvalidBoolean, name,
		)
	}
}

// PreviewList splits the comma separated previews input, dropping blanks.
func (in *Inputs) PreviewList() []string {
	var out []string
	for _, p := range strings.Split(in.Previews, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TimeoutDuration parses the timeout input as a Go duration; a bare integer
// is a number of seconds. Empty means no timeout.
func (in *Inputs) TimeoutDuration() (time.Duration, error) {
	s := strings.TrimSpace(in.Timeout)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: %q is negative", ErrInvalidTimeout, s)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidTimeout, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidTimeout, s)
	}
	return d, nil
}

// LogValue implements slog.LogValuer. The token and script bodies are never
// logged.
func (in *Inputs) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("token_set", in.GitHubToken != ""),
		slog.String(InputDebug, in.Debug),
		slog.String(InputUserAgent, in.UserAgent),
		slog.String(InputPreviews, in.Previews),
		slog.String(InputBaseURL, in.BaseURL),
		slog.String(InputRetries, in.Retries),
		slog.String(InputRetryExemptStatusCodes, in.RetryExemptStatusCodes),
		slog.Int("script_chars", len(in.Script)),
		slog.String(InputScriptFile, in.ScriptFile),
		slog.String(InputResultEncoding, in.ResultEncoding),
		slog.String(InputEngine, in.Engine),
		slog.String(InputTimeout, in.Timeout),
	)
}
