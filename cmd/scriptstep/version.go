package main

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/atlanticdynamic/scriptstep/internal/script"
	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

// interpreterModules are reported with their resolved versions when build
// info is available.
var interpreterModules = []string{
	"github.com/robbyt/go-polyscript",
	"github.com/deepnoodle-ai/risor/v2",
	"go.starlark.net",
}

var versionCmd = &cli.Command{
	Name:  "version",
	Usage: "Print the version, script engines and Go runtime",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		if _, err := fmt.Fprintf(w, "scriptstep version %s\n", cmd.Root().Version); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "engines: %s\n", engineList()); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "go: %s\n", runtime.Version()); err != nil {
			return err
		}
		for _, dep := range moduleVersions() {
			if _, err := fmt.Fprintf(w, "  %s\n", dep); err != nil {
				return err
			}
		}
		return nil
	},
}

func engineList() string {
	names := make([]string, 0, 2)
	for _, t := range []script.EngineType{script.EngineRisor, script.EngineStarlark} {
		name := t.String()
		if t == script.DefaultEngine {
			name += " (default)"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func moduleVersions() []string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	var out []string
	for _, path := range interpreterModules {
		for _, dep := range info.Deps {
			if dep.Path == path {
				out = append(out, dep.Path+" "+dep.Version)
			}
		}
	}
	return out
}
