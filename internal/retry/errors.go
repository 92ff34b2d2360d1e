package retry

import (
	"errors"
	"fmt"
)

var (
	// ErrRetryConfig is the base error for retry configuration problems.
	ErrRetryConfig = errors.New("retry configuration error")

	ErrInvalidRetries    = fmt.Errorf("%w: invalid retries", ErrRetryConfig)
	ErrInvalidStatusCode = fmt.Errorf("%w: invalid status code", ErrRetryConfig)
)
