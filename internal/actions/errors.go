package actions

import (
	"errors"
	"fmt"
)

var (
	ErrActions = errors.New("actions runtime error")

	ErrDelimiterCollision = fmt.Errorf("%w: value contains the file command delimiter", ErrActions)
	ErrWriteFileCommand   = fmt.Errorf("%w: failed to write file command", ErrActions)
	ErrReadEvent          = fmt.Errorf("%w: failed to read event payload", ErrActions)
)
