// Package interpolation expands ${VAR} and ${VAR:default} references in
// configuration values.
package interpolation

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

// ErrUndefinedVariable is returned for a ${VAR} reference without a default
// whose variable is not set.
var ErrUndefinedVariable = errors.New("environment variable not defined")

// Pattern for ${VAR_NAME} and ${VAR_NAME:default} syntax - captures colon explicitly
var envVarWithDefaultPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:)?([^}]*)\}`)

// LookupFunc resolves a variable, reporting whether it is set.
type LookupFunc func(name string) (string, bool)

// Expander expands variable references using Lookup.
type Expander struct {
	Lookup LookupFunc
}

// New returns an Expander backed by lookup, or by the process environment
// when lookup is nil.
func New(lookup LookupFunc) *Expander {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Expander{Lookup: lookup}
}

// Expand replaces every reference in input. A set variable wins, even when
// empty; otherwise the default is used when a colon is present. References
// with neither are left in place and reported together.
func (e *Expander) Expand(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	var missing []error
	result := envVarWithDefaultPattern.ReplaceAllStringFunc(input, func(match string) string {
		// [full_match, varName, colon, defaultValue]
		submatches := envVarWithDefaultPattern.FindStringSubmatch(match)
		name, hasDefault, def := submatches[1], submatches[2] == ":", submatches[3]

		if value, ok := e.Lookup(name); ok {
			return value
		}
		if hasDefault {
			return def
		}
		missing = append(missing, fmt.Errorf("%w: %s", ErrUndefinedVariable, name))
		return match
	})

	return result, errors.Join(missing...)
}

// ExpandEnvVars expands input against the process environment.
func ExpandEnvVars(input string) (string, error) {
	return New(nil).Expand(input)
}
