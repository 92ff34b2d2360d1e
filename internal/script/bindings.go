// Package script runs user scripts with the step's capabilities injected.
package script

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/atlanticdynamic/scriptstep/internal/client"
	"github.com/atlanticdynamic/scriptstep/internal/toolkit"
)

// Bindings is the fixed set of capabilities handed to a script.
type Bindings struct {
	GitHub  *client.Client
	Context *actions.Context
	Core    *actions.Runtime
	Logger  *slog.Logger
	Exec    *toolkit.Exec
	IO      toolkit.IO
	// Glob compiles newline separated include and exclude patterns.
	Glob func(patterns string) (*toolkit.Globber, error)
	// Require loads a module's source relative to the workspace.
	Require func(name string) (string, error)
	// Inputs holds the free-form script-data input.
	Inputs map[string]any
	// Workspace is the directory glob walks.
	Workspace string
}

// NewBindings wires the toolkit helpers around an API client and workflow
// context.
func NewBindings(
	gh *client.Client,
	wctx *actions.Context,
	core *actions.Runtime,
	logger *slog.Logger,
	resolver *Resolver,
) *Bindings {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = NewResolver("")
	}
	return &Bindings{
		GitHub:  gh,
		Context: wctx,
		Core:    core,
		Logger:  logger,
		Exec:    toolkit.NewExec(logger),
		Glob:    toolkit.NewGlobber,
		Require: resolver.Require,
		Inputs:  map[string]any{},

		Workspace: resolver.Root,
	}
}

// Octokit is an alias for GitHub, kept for scripts written against the
// JavaScript action.
func (b *Bindings) Octokit() *client.Client {
	return b.GitHub
}

// Data flattens the bindings into plain data for interpreters that cannot
// hold Go values. Every value is normalized through JSON so only maps, slices,
// strings, float64, bool and nil remain.
func (b *Bindings) Data() (map[string]any, error) {
	raw := map[string]any{
		"inputs": b.Inputs,
	}
	if b.Context != nil {
		raw["context"] = b.Context.Map()
	}
	if b.GitHub != nil {
		desc := b.GitHub.Describe()
		raw["github"] = desc
		raw["octokit"] = desc
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	return out, nil
}

// ParseInputs decodes the script-data input, which must be a JSON object.
// An empty string yields an empty map.
func ParseInputs(raw string) (map[string]any, error) {
	out := map[string]any{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: script-data must be a JSON object: %w", ErrInvalidData, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
