// Package useragent derives the outbound client identification string.
//
// The base value is optionally suffixed with the orchestration identifier that
// the Actions runner exports as ACTIONS_ORCHESTRATION_ID. The identifier is
// sanitized by stripping every character outside [A-Za-z0-9._-]; when nothing
// survives, the base value is returned unchanged.
package useragent

import "strings"

const (
	// DefaultBase is used when no user-agent input is supplied.
	DefaultBase = "actions/github-script"

	// OrchestrationIDEnv is the environment variable holding the orchestration identifier.
	OrchestrationIDEnv = "ACTIONS_ORCHESTRATION_ID"

	suffixPrefix = " orchestration-id/"
)

// LookupFunc matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Sanitize removes every character outside [A-Za-z0-9._-], preserving the order
// of the characters that remain.
func Sanitize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		if allowed(id[i]) {
			b.WriteByte(id[i])
		}
	}
	return b.String()
}

func allowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '-':
		return true
	}
	return false
}

// Build returns base unchanged when orchestrationID is empty or sanitizes to
// nothing, and otherwise base followed by " orchestration-id/<sanitized>".
// An empty base falls back to DefaultBase.
func Build(base, orchestrationID string) string {
	if base == "" {
		base = DefaultBase
	}
	if orchestrationID == "" {
		return base
	}

	sanitized := Sanitize(orchestrationID)
	if sanitized == "" {
		return base
	}
	return base + suffixPrefix + sanitized
}

// FromEnv reads the orchestration identifier through lookup and applies Build.
// A nil lookup behaves as if the variable were unset.
func FromEnv(base string, lookup LookupFunc) string {
	if lookup == nil {
		return Build(base, "")
	}
	id, _ := lookup(OrchestrationIDEnv)
	return Build(base, id)
}
