package script

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

// Executor runs a script against the bindings and returns its value.
type Executor interface {
	Execute(ctx context.Context, b *Bindings) (any, error)
}

// Func adapts a Go function to Executor. It receives the live Bindings rather
// than the script-facing view.
type Func func(ctx context.Context, b *Bindings) (any, error)

// Execute implements Executor.
func (f Func) Execute(ctx context.Context, b *Bindings) (any, error) {
	return f(ctx, b)
}

// Run executes e with an optional deadline. Panics and errors raised by the
// script are returned as errors; a zero timeout adds no deadline.
func Run(ctx context.Context, e Executor, b *Bindings, timeout time.Duration) (result any, err error) {
	if timeout < 0 {
		return nil, ErrNegativeTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			if b != nil && b.Logger != nil {
				b.Logger.Debug("Recovered script panic", "panic", r, "stack", string(debug.Stack()))
			}
			result = nil
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	start := time.Now()
	result, err = e.Execute(ctx, b)
	if err != nil {
		if errors.Is(err, ErrScript) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}

	if b != nil && b.Logger != nil {
		b.Logger.Debug("Script finished", "duration", time.Since(start))
	}
	return result, nil
}
