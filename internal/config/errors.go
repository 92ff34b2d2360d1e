package config

import (
	"errors"
	"fmt"
)

var (
	ErrConfig = errors.New("configuration error")

	ErrMissingInput         = fmt.Errorf("%w: input required and not supplied", ErrConfig)
	ErrInvalidBoolean       = fmt.Errorf("%w: input does not meet YAML 1.2 \"Core Schema\" specification", ErrConfig)
	ErrInvalidTimeout       = fmt.Errorf("%w: invalid timeout", ErrConfig)
	ErrConflictingInputs    = fmt.Errorf("%w: conflicting inputs", ErrConfig)
	ErrUnknownInput         = fmt.Errorf("%w: unknown input", ErrConfig)
	ErrUnsupportedExtension = fmt.Errorf("%w: unsupported config file extension", ErrConfig)
	ErrFailedToLoadConfig   = fmt.Errorf("%w: failed to load config file", ErrConfig)
	ErrInvalidLogFormat     = fmt.Errorf("%w: invalid log format", ErrConfig)
	ErrInvalidLogLevel      = fmt.Errorf("%w: invalid log level", ErrConfig)
)
