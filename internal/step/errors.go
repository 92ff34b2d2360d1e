package step

import (
	"errors"
	"fmt"
)

var (
	ErrStep = errors.New("step error")

	ErrNilInputs    = fmt.Errorf("%w: inputs cannot be nil", ErrStep)
	ErrPrepare      = fmt.Errorf("%w: preparation failed", ErrStep)
	ErrExecute      = fmt.Errorf("%w: script failed", ErrStep)
	ErrPublish      = fmt.Errorf("%w: failed to publish result", ErrStep)
	ErrStateMachine = fmt.Errorf("%w: state machine error", ErrStep)
)
