package toolkit

import (
	"errors"
	"fmt"
)

var (
	ErrToolkit = errors.New("toolkit error")

	ErrEmptyCommand = fmt.Errorf("%w: command cannot be empty", ErrToolkit)
	ErrExitCode     = fmt.Errorf("%w: process exited with non-zero code", ErrToolkit)
	ErrBadPattern   = fmt.Errorf("%w: invalid glob pattern", ErrToolkit)
	ErrNotFound     = fmt.Errorf("%w: not found", ErrToolkit)
)
