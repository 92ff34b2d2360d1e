package config

import (
	"os"
	"strings"
)

// EnvVar returns the variable the runner uses for an input: INPUT_ followed by
// the upper-cased name with spaces replaced by underscores. Hyphens are kept.
func EnvVar(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// FromEnv reads every input from its INPUT_ variable. Values are trimmed,
// except script and script-data whose whitespace may be significant.
func FromEnv(getenv func(string) string) *Inputs {
	if getenv == nil {
		getenv = os.Getenv
	}
	in := &Inputs{}
	for _, f := range in.fields() {
		v := getenv(EnvVar(f.name))
		if f.name != InputScript && f.name != InputScriptData {
			v = strings.TrimSpace(v)
		}
		*f.ptr = v
	}
	return in
}
