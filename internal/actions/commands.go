// Package actions implements the parts of the GitHub Actions runner protocol
// a step needs: workflow commands on stdout, file commands for outputs, and
// the workflow context exported through GITHUB_* variables.
package actions

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// GetenvFunc matches the signature of os.Getenv.
type GetenvFunc func(key string) string

// Runtime writes workflow commands and file commands for one step invocation.
type Runtime struct {
	getenv GetenvFunc
	out    io.Writer

	mu     sync.Mutex
	failed bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithGetenv replaces os.Getenv as the environment source.
func WithGetenv(getenv GetenvFunc) Option {
	return func(r *Runtime) {
		if getenv != nil {
			r.getenv = getenv
		}
	}
}

// WithWriter sets where workflow commands are written. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Runtime) {
		if w != nil {
			r.out = w
		}
	}
}

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		getenv: os.Getenv,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Getenv reads a variable from the runtime's environment source.
func (r *Runtime) Getenv(key string) string {
	return r.getenv(key)
}

// IsDebug reports whether the runner has step debug logging enabled.
func (r *Runtime) IsDebug() bool {
	return r.getenv("RUNNER_DEBUG") == "1"
}

// Failed reports whether SetFailed was called.
func (r *Runtime) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// SetFailed records the failure and emits an error annotation.
func (r *Runtime) SetFailed(message string) {
	r.mu.Lock()
	r.failed = true
	r.mu.Unlock()
	r.Error(message)
}

// Info writes a plain log line.
func (r *Runtime) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, message)
}

func (r *Runtime) Debug(message string)   { r.Issue("debug", nil, message) }
func (r *Runtime) Notice(message string)  { r.Issue("notice", nil, message) }
func (r *Runtime) Warning(message string) { r.Issue("warning", nil, message) }
func (r *Runtime) Error(message string)   { r.Issue("error", nil, message) }

// Issue writes a workflow command of the form ::name key=value,...::message.
func (r *Runtime) Issue(name string, properties map[string]string, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, formatCommand(name, properties, message))
}

func formatCommand(name string, properties map[string]string, message string) string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(name)

	if len(properties) > 0 {
		keys := make([]string, 0, len(properties))
		for k, v := range properties {
			if v != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(escapeProperty(properties[k]))
		}
	}

	b.WriteString("::")
	b.WriteString(escapeData(message))
	return b.String()
}

var (
	dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propEscaper.Replace(s) }
