package script

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/atlanticdynamic/scriptstep/internal/toolkit"
)

// Globals extends Data with callable helpers for interpreters that can hold Go
// functions. Risor wraps each func as a native function and passes the
// evaluation context as the first argument, so API calls and commands stop
// when the script's deadline expires.
//
// Scripts see:
//
//	ctx.github.request(method, path, body?)  also ctx.octokit.request
//	ctx.core.info(msg) debug notice warning error set_failed set_output summary
//	ctx.log.debug(msg, fields?) info warn error
//	ctx.exec.run(name, args...)
//	ctx.glob(patterns)
//	ctx.require(name)
//	ctx.io.which(tool) mkdir_p rm_rf mv cp
func (b *Bindings) Globals() (map[string]any, error) {
	out, err := b.Data()
	if err != nil {
		return nil, err
	}

	if b.GitHub != nil {
		for _, name := range []string{"github", "octokit"} {
			api, ok := out[name].(map[string]any)
			if !ok {
				api = map[string]any{}
			}
			api["request"] = b.request
			out[name] = api
		}
	}
	if b.Core != nil {
		out["core"] = b.coreFuncs()
	}
	out["log"] = b.logFuncs()
	if b.Exec != nil {
		out["exec"] = map[string]any{"run": b.run}
	}
	if b.Glob != nil {
		out["glob"] = b.glob
	}
	if b.Require != nil {
		out["require"] = b.Require
	}
	out["io"] = map[string]any{
		"which":   b.IO.Which,
		"mkdir_p": b.IO.MkdirP,
		"rm_rf":   b.IO.RmRF,
		"mv":      b.IO.Mv,
		"cp":      b.IO.Cp,
	}
	return out, nil
}

// request performs a REST call and returns the response as plain data. The
// body is optional; a map is sent as the JSON request body.
func (b *Bindings) request(ctx context.Context, method, path string, body ...map[string]any) (map[string]any, error) {
	var payload any
	if len(body) > 0 && body[0] != nil {
		payload = body[0]
	}
	resp, err := b.GitHub.Request(ctx, strings.ToUpper(method), path, payload)
	if err != nil {
		return nil, err
	}
	headers := make(map[string]any, len(resp.Headers))
	for k, v := range resp.Headers {
		headers[k] = v
	}
	return map[string]any{
		"status":  resp.Status,
		"url":     resp.URL,
		"headers": headers,
		"data":    resp.Data,
	}, nil
}

func (b *Bindings) coreFuncs() map[string]any {
	core := b.Core
	return map[string]any{
		"info":       core.Info,
		"debug":      core.Debug,
		"notice":     core.Notice,
		"warning":    core.Warning,
		"error":      core.Error,
		"set_failed": core.SetFailed,
		"set_output": core.SetOutput,
		"summary":    core.AppendSummary,
		"is_debug":   core.IsDebug,
	}
}

func (b *Bindings) logFuncs() map[string]any {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := func(lvl slog.Level) func(context.Context, string, ...map[string]any) {
		return func(ctx context.Context, msg string, fields ...map[string]any) {
			var attrs []slog.Attr
			for _, f := range fields {
				for _, k := range slices.Sorted(maps.Keys(f)) {
					attrs = append(attrs, slog.Any(k, f[k]))
				}
			}
			logger.LogAttrs(ctx, lvl, msg, attrs...)
		}
	}
	return map[string]any{
		"debug": level(slog.LevelDebug),
		"info":  level(slog.LevelInfo),
		"warn":  level(slog.LevelWarn),
		"error": level(slog.LevelError),
	}
}

// run executes a command and returns its exit code and captured output. A
// non-zero exit code is raised as an error in the script.
func (b *Bindings) run(ctx context.Context, name string, args ...string) (map[string]any, error) {
	out, err := b.Exec.Run(ctx, name, args, toolkit.ExecOptions{})
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"exit_code": out.ExitCode,
		"stdout":    out.Stdout,
		"stderr":    out.Stderr,
	}, nil
}

// glob returns the workspace-relative files matching newline separated
// patterns.
func (b *Bindings) glob(patterns string) ([]string, error) {
	g, err := b.Glob(patterns)
	if err != nil {
		return nil, err
	}
	root := b.Workspace
	if root == "" {
		root = "."
	}
	return g.Glob(root)
}
