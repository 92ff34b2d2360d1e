package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atlanticdynamic/scriptstep/internal/actions"
	"github.com/stretchr/testify/require"
)

// Env is a fake process environment.
type Env map[string]string

// Getenv returns the value for key, or "" when unset.
func (e Env) Getenv(key string) string { return e[key] }

// Lookup matches the signature of os.LookupEnv.
func (e Env) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Runner is an actions.Runtime reading from a fake environment, with stdout
// captured and GITHUB_OUTPUT pointing at a temp file.
type Runner struct {
	Env        Env
	Stdout     *ThreadSafeBuffer
	OutputPath string
	Runtime    *actions.Runtime
}

// NewRunner creates a Runner. Keys in env override the defaults.
func NewRunner(t *testing.T, env Env) *Runner {
	t.Helper()

	r := &Runner{
		Env:        Env{},
		Stdout:     &ThreadSafeBuffer{},
		OutputPath: filepath.Join(t.TempDir(), "github_output"),
	}
	r.Env["GITHUB_OUTPUT"] = r.OutputPath
	r.Env["GITHUB_REPOSITORY"] = "octo/hello"
	for k, v := range env {
		r.Env[k] = v
	}

	r.Runtime = actions.New(
		actions.WithGetenv(r.Env.Getenv),
		actions.WithWriter(r.Stdout),
	)
	return r
}

// Outputs parses the heredoc entries written to GITHUB_OUTPUT. A missing file
// yields an empty map.
func (r *Runner) Outputs(t *testing.T) map[string]string {
	t.Helper()
	return ReadOutputs(t, r.OutputPath)
}

// ReadOutputs parses a GITHUB_OUTPUT file of name<<delimiter entries.
func ReadOutputs(t *testing.T, path string) map[string]string {
	t.Helper()

	out := map[string]string{}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return out
	}
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var (
		name, delimiter string
		value           []string
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case delimiter == "":
			n, d, ok := strings.Cut(line, "<<")
			require.True(t, ok, "malformed output line %q", line)
			name, delimiter, value = n, d, nil
		case line == delimiter:
			out[name] = strings.Join(value, "\n")
			delimiter = ""
		default:
			value = append(value, line)
		}
	}
	require.NoError(t, scanner.Err())
	require.Empty(t, delimiter, "unterminated output %q", name)
	return out
}
