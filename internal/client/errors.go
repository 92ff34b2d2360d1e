package client

import (
	"errors"
	"fmt"
)

var (
	ErrClient = errors.New("api client error")

	ErrMissingToken   = fmt.Errorf("%w: token is required", ErrClient)
	ErrInvalidBaseURL = fmt.Errorf("%w: invalid base URL", ErrClient)
	ErrRequestFailed  = fmt.Errorf("%w: request failed", ErrClient)
)
