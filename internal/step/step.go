// Package step runs one invocation of the action: it builds the API client
// from the inputs, executes the user script and publishes its result.
package step

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/atlanticdynamic/scriptstep/internal/client"
	"github.com/atlanticdynamic/scriptstep/internal/config"
	"github.com/atlanticdynamic/scriptstep/internal/finitestate"
	"github.com/atlanticdynamic/scriptstep/internal/result"
	"github.com/atlanticdynamic/scriptstep/internal/retry"
	"github.com/atlanticdynamic/scriptstep/internal/script"
	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-loglater/storage"
)

// OutputName is the step output that receives the encoded result.
const OutputName = "result"

// Config holds the collaborators of a run.
type Config struct {
	Inputs *config.Inputs
	// Runtime receives workflow and file commands. Defaults to stdout and the
	// process environment.
	Runtime *actions.Runtime
	// Executor overrides the script engine selected by the inputs.
	Executor script.Executor
	// Handler receives the run's logs. Defaults to the slog default handler.
	Handler slog.Handler
	// Workspace is the root for script-file and Require. Defaults to
	// GITHUB_WORKSPACE, then the working directory.
	Workspace string
}

// Run is a single execution of the step.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time

	inputs  *config.Inputs
	runtime *actions.Runtime

	fsm          finitestate.Machine
	logger       *slog.Logger
	logCollector *loglater.LogCollector

	options      retry.Options
	clientConfig client.Config
	client       *client.Client
	executor     script.Executor
	bindings     *script.Bindings
	timeout      time.Duration
	workspace    string
	prepared     bool

	output string
}

// New creates a run in the New state.
func New(cfg Config) (*Run, error) {
	if cfg.Inputs == nil {
		return nil, ErrNilInputs
	}

	handler := cfg.Handler
	if handler == nil {
		handler = slog.Default().Handler()
	}
	runtime := cfg.Runtime
	if runtime == nil {
		runtime = actions.New()
	}

	id := uuid.Must(uuid.NewV6())

	sm, err := finitestate.New(handler)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStateMachine, id, err)
	}

	logCollector := loglater.NewLogCollector(handler)
	logger := slog.New(logCollector).With("run_id", id.String())

	workspace := cfg.Workspace
	if workspace == "" {
		workspace = runtime.Getenv("GITHUB_WORKSPACE")
	}

	return &Run{
		ID:           id,
		CreatedAt:    time.Now(),
		inputs:       cfg.Inputs,
		runtime:      runtime,
		fsm:          sm,
		logger:       logger,
		logCollector: logCollector,
		executor:     cfg.Executor,
		workspace:    workspace,
	}, nil
}

// GetState returns the current lifecycle state.
func (r *Run) GetState() string {
	return r.fsm.GetState()
}

// GetLogs returns every record logged by the run so far.
func (r *Run) GetLogs() []storage.Record {
	return r.logCollector.GetLogs()
}

// PlaybackLogs replays the run's logs to handler.
func (r *Run) PlaybackLogs(handler slog.Handler) error {
	return r.logCollector.PlayLogs(handler)
}

// Inputs returns the inputs the run was created with.
func (r *Run) Inputs() *config.Inputs {
	return r.inputs
}

// ClientConfig returns the client configuration built during Prepare.
func (r *Run) ClientConfig() client.Config {
	return r.clientConfig
}

// Executor returns the executor selected during Prepare.
func (r *Run) Executor() script.Executor {
	return r.executor
}

// Output returns the encoded result once the run has stopped.
func (r *Run) Output() string {
	return r.output
}

// Execute prepares the run if needed, executes the script and publishes the
// encoded result as the "result" output.
func (r *Run) Execute(ctx context.Context) (string, error) {
	if !r.prepared {
		if err := r.Prepare(ctx); err != nil {
			return "", err
		}
	}

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return "", r.fail(fmt.Errorf("%w: %w", ErrStateMachine, err))
	}

	r.logger.Debug("Executing script", "timeout", r.timeout)
	value, err := script.Run(ctx, r.executor, r.bindings, r.timeout)
	if err != nil {
		return "", r.fail(fmt.Errorf("%w: %w", ErrExecute, err))
	}

	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		return "", r.fail(fmt.Errorf("%w: %w", ErrStateMachine, err))
	}

	encoded, err := result.Encode(value, r.inputs.ResultEncoding)
	if err != nil {
		return "", r.fail(err)
	}
	if err := r.runtime.SetOutput(OutputName, encoded); err != nil {
		return "", r.fail(fmt.Errorf("%w: %w", ErrPublish, err))
	}
	r.output = encoded

	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return "", r.fail(fmt.Errorf("%w: %w", ErrStateMachine, err))
	}

	r.logger.Debug("Run completed", "duration", time.Since(r.CreatedAt), "result_bytes", len(encoded))
	return encoded, nil
}

// fail moves the run to the Error state and logs err.
func (r *Run) fail(err error) error {
	if serr := r.fsm.SetState(finitestate.StatusError); serr != nil {
		err = errors.Join(err, serr)
	}
	r.logger.Error("Run failed", "error", err, "state", r.GetState())
	return err
}

func (r *Run) lookupEnv(key string) (string, bool) {
	v := r.runtime.Getenv(key)
	return v, v != ""
}

func workspaceOrCwd(ws string) string {
	if ws != "" {
		return ws
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}
