package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robbyt/go-polyscript/engines/risor"
	"github.com/robbyt/go-polyscript/engines/starlark"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
	"github.com/robbyt/go-polyscript/platform/script/loader"
)

var _ Executor = (*Engine)(nil)

// Engine executes inline Risor or Starlark scripts through go-polyscript.
// Scripts receive a ctx map holding context, github, octokit and inputs; the
// last Risor expression or the Starlark "_" variable is the result. Risor
// scripts also get the callables listed on Bindings.Globals.
type Engine struct {
	// Type selects the interpreter.
	Type EngineType
	// Code is the inline script source.
	Code string
	// File is a module path resolved through Resolver. Mutually exclusive with Code.
	File string
	// Resolver locates File. Nil resolves against the working directory.
	Resolver *Resolver
	// Logger receives interpreter logs.
	Logger *slog.Logger

	compiled  platform.Evaluator
	buildOnce sync.Once
	buildErr  error
}

func (e *Engine) String() string {
	if e == nil {
		return "Engine(nil)"
	}
	if e.File != "" {
		return fmt.Sprintf("%s(file=%s)", e.Type, e.File)
	}
	return fmt.Sprintf("%s(code=%d chars)", e.Type, len(e.Code))
}

// Validate checks the source settings and compiles the script.
func (e *Engine) Validate() error {
	var errs []error
	if e.Type != EngineRisor && e.Type != EngineStarlark {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidEngine, e.Type))
	}
	if e.Code == "" && e.File == "" {
		errs = append(errs, ErrMissingSource)
	}
	if e.Code != "" && e.File != "" {
		errs = append(errs, ErrBothSources)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	e.build()
	return e.buildErr
}

// build compiles the script exactly once.
func (e *Engine) build() {
	e.buildOnce.Do(func() {
		scriptLoader, err := e.loader()
		if err != nil {
			e.buildErr = fmt.Errorf("%w: %w", ErrLoaderCreation, err)
			return
		}

		logger := e.Logger
		if logger == nil {
			logger = slog.Default()
		}

		switch e.Type {
		case EngineRisor:
			e.compiled, err = risor.FromRisorLoader(logger.Handler(), scriptLoader)
		case EngineStarlark:
			e.compiled, err = starlark.FromStarlarkLoader(logger.Handler(), scriptLoader)
		default:
			err = fmt.Errorf("%w: %s", ErrInvalidEngine, e.Type)
		}
		if err != nil {
			e.buildErr = fmt.Errorf("%w: %s: %w", ErrCompilationFailed, e.Type, err)
		}
	})
}

func (e *Engine) loader() (loader.Loader, error) {
	if e.Code != "" {
		return loader.NewFromString(e.Code)
	}
	resolver := e.Resolver
	if resolver == nil {
		resolver = NewResolver("")
	}
	path, err := resolver.Resolve(e.File)
	if err != nil {
		return nil, err
	}
	return loader.NewFromDisk(path)
}

// Execute implements Executor.
func (e *Engine) Execute(ctx context.Context, b *Bindings) (any, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	scriptData := map[string]any{}
	if b != nil {
		var err error
		// Starlark values are converted from plain data only.
		if e.Type == EngineRisor {
			scriptData, err = b.Globals()
		} else {
			scriptData, err = b.Data()
		}
		if err != nil {
			return nil, err
		}
	}

	provider := data.NewContextProvider(constants.EvalData)
	evalCtx, err := provider.AddDataToContext(ctx, scriptData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}

	start := time.Now()
	response, err := e.compiled.Eval(evalCtx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrExecutionFailed, e.Type, ctxErr)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrExecutionFailed, e.Type, err)
	}

	if e.Logger != nil {
		e.Logger.Debug("Script evaluated", "engine", e.Type.String(), "duration", time.Since(start))
	}
	return response.Interface(), nil
}
