package script

import (
	"fmt"
	"strings"
)

// EngineType selects the interpreter for inline scripts.
type EngineType int

const (
	EngineUnspecified EngineType = iota
	EngineRisor
	EngineStarlark
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineRisor

// ParseEngineType converts an engine name to an EngineType. An empty name
// selects DefaultEngine.
func ParseEngineType(name string) (EngineType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultEngine, nil
	case "risor":
		return EngineRisor, nil
	case "starlark", "star":
		return EngineStarlark, nil
	default:
		return EngineUnspecified, fmt.Errorf("%w: %q must be either \"risor\" or \"starlark\"", ErrInvalidEngine, name)
	}
}

func (t EngineType) String() string {
	switch t {
	case EngineRisor:
		return "risor"
	case EngineStarlark:
		return "starlark"
	case EngineUnspecified:
		return "unspecified"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}
