package toolkit

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Globber matches workspace files against include and exclude patterns.
// Patterns use '/' as the separator; '**' crosses directories. A leading '!'
// excludes matches, and the last matching pattern wins.
type Globber struct {
	patterns []pattern
}

type pattern struct {
	negate bool
	glob   glob.Glob
}

// NewGlobber compiles newline separated patterns. Blank lines and lines
// starting with '#' are ignored.
func NewGlobber(patterns string) (*Globber, error) {
	g := &Globber{}
	for _, line := range strings.Split(patterns, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		negate := strings.HasPrefix(line, "!")
		line = strings.TrimPrefix(line, "!")
		line = strings.TrimPrefix(line, "./")

		compiled, err := glob.Compile(line, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, line, err)
		}
		g.patterns = append(g.patterns, pattern{negate: negate, glob: compiled})
	}
	return g, nil
}

// Match reports whether a slash separated relative path is selected.
func (g *Globber) Match(rel string) bool {
	matched := false
	for _, p := range g.patterns {
		if p.glob.Match(rel) {
			matched = !p.negate
		}
	}
	return matched
}

// Glob walks root and returns the matching files as slash separated paths
// relative to root, in lexical order.
func (g *Globber) Glob(root string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if g.Match(rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %w", ErrToolkit, root, err)
	}
	return matches, nil
}
