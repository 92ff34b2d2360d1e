package script

import (
	"errors"
	"fmt"
)

var (
	// ErrScript is the base error for script preparation and execution.
	ErrScript = errors.New("script error")

	ErrInvalidEngine     = fmt.Errorf("%w: invalid engine", ErrScript)
	ErrMissingSource     = fmt.Errorf("%w: either code or a script file is required", ErrScript)
	ErrBothSources       = fmt.Errorf("%w: code and script file are mutually exclusive", ErrScript)
	ErrNegativeTimeout   = fmt.Errorf("%w: negative timeout", ErrScript)
	ErrLoaderCreation    = fmt.Errorf("%w: failed to create script loader", ErrScript)
	ErrCompilationFailed = fmt.Errorf("%w: compilation failed", ErrScript)
	ErrExecutionFailed   = fmt.Errorf("%w: execution failed", ErrScript)
	ErrPanic             = fmt.Errorf("%w: script panicked", ErrScript)
	ErrModuleNotFound    = fmt.Errorf("%w: module not found", ErrScript)
	ErrInvalidData       = fmt.Errorf("%w: invalid script data", ErrScript)
)
