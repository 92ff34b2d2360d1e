package logging

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// CommandWriter emits workflow commands. *actions.Runtime implements it.
type CommandWriter interface {
	Debug(message string)
	Info(message string)
	Warning(message string)
	Error(message string)
}

// ActionsHandler renders records as workflow commands: debug records become
// ::debug::, warnings ::warning::, errors ::error:: and everything else a plain
// line. Attributes are appended as key=value pairs.
type ActionsHandler struct {
	out    CommandWriter
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*ActionsHandler)(nil)

// NewActionsHandler creates a handler writing to out.
func NewActionsHandler(out CommandWriter, level slog.Leveler) *ActionsHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &ActionsHandler{out: out, level: level}
}

func (h *ActionsHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ActionsHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, prefix, a)
		return true
	})

	msg := b.String()
	switch {
	case r.Level >= slog.LevelError:
		h.out.Error(msg)
	case r.Level >= slog.LevelWarn:
		h.out.Warning(msg)
	case r.Level >= slog.LevelInfo:
		h.out.Info(msg)
	default:
		h.out.Debug(msg)
	}
	return nil
}

func (h *ActionsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		h2.attrs = append(h2.attrs, a)
	}
	return h2
}

func (h *ActionsHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *ActionsHandler) clone() *ActionsHandler {
	return &ActionsHandler{
		out:    h.out,
		level:  h.level,
		attrs:  slices.Clone(h.attrs),
		groups: slices.Clone(h.groups),
	}
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Any())
}
