package step

import (
	"context"
	"errors"
	"fmt"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/atlanticdynamic/scriptstep/internal/client"
	"github.com/atlanticdynamic/scriptstep/internal/finitestate"
	"github.com/atlanticdynamic/scriptstep/internal/retry"
	"github.com/atlanticdynamic/scriptstep/internal/script"
	"github.com/atlanticdynamic/scriptstep/internal/useragent"
)

// Prepare validates the inputs and builds everything the script needs: retry
// options and user agent (independently), then the client from both, then the
// compiled script. Input errors are reported before any client exists.
func (r *Run) Prepare(ctx context.Context) error {
	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return r.fail(fmt.Errorf("%w: %w", ErrStateMachine, err))
	}
	if err := r.prepare(ctx); err != nil {
		return r.fail(err)
	}
	r.prepared = true
	return nil
}

func (r *Run) prepare(ctx context.Context) error {
	in := r.inputs
	if err := in.Validate(); err != nil {
		return err
	}

	opts, err := retry.Build(in.Retries, in.RetryExemptStatusCodes)
	if err != nil {
		return err
	}
	r.options = opts

	ua := useragent.FromEnv(in.UserAgent, r.lookupEnv)

	timeout, err := in.TimeoutDuration()
	if err != nil {
		return err
	}
	r.timeout = timeout

	inputs, err := script.ParseInputs(in.ScriptData)
	if err != nil {
		return err
	}

	debug, err := in.DebugEnabled()
	if err != nil {
		return err
	}
	debug = debug || r.runtime.IsDebug()

	baseURL := in.BaseURL
	if baseURL == "" {
		baseURL = r.runtime.Getenv("GITHUB_API_URL")
	}

	r.clientConfig = client.Config{
		UserAgent: ua,
		Previews:  in.PreviewList(),
		Retry:     opts.Policy,
		Request:   opts.Request,
		BaseURL:   baseURL,
	}
	if debug {
		r.clientConfig.Logger = r.logger.WithGroup("http")
	}
	r.logger.Debug("Client configuration", "client", r.clientConfig, "retry", opts)

	gh, err := client.New(in.GitHubToken, r.clientConfig)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPrepare, err)
	}
	r.client = gh

	wctx, err := actions.NewContext(r.runtime.Getenv)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPrepare, err)
	}

	resolver := script.NewResolver(workspaceOrCwd(r.workspace))
	if r.executor == nil {
		engine, err := r.newEngine(resolver)
		if err != nil {
			return err
		}
		r.executor = engine
	}

	r.bindings = script.NewBindings(gh, wctx, r.runtime, r.logger.WithGroup("script"), resolver)
	r.bindings.Inputs = inputs

	if err := ctx.Err(); err != nil {
		return errors.Join(ErrPrepare, err)
	}
	r.logger.Debug("Run prepared", "executor", fmt.Sprint(r.executor))
	return nil
}

func (r *Run) newEngine(resolver *script.Resolver) (*script.Engine, error) {
	engineType, err := script.ParseEngineType(r.inputs.Engine)
	if err != nil {
		return nil, err
	}
	engine := &script.Engine{
		Type:     engineType,
		Code:     r.inputs.Script,
		File:     r.inputs.ScriptFile,
		Resolver: resolver,
		Logger:   r.logger.WithGroup("engine"),
	}
	if err := engine.Validate(); err != nil {
		return nil, err
	}
	return engine, nil
}
