package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver loads script modules relative to a root directory, normally the
// workflow workspace.
type Resolver struct {
	Root string
}

// NewResolver returns a Resolver rooted at root. An empty root selects the
// current working directory.
func NewResolver(root string) *Resolver {
	if root == "" {
		if wd, err := os.Getwd(); err == nil {
			root = wd
		}
	}
	return &Resolver{Root: root}
}

// Resolve returns the absolute path for a module name. Absolute names are
// kept; everything else, including "./" prefixed names, is joined to Root.
func (r *Resolver) Resolve(name string) (string, error) {
	name = strings.TrimPrefix(name, "file://")
	if name == "" {
		return "", fmt.Errorf("%w: empty module name", ErrModuleNotFound)
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrModuleNotFound, name, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrModuleNotFound, name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrModuleNotFound, name)
	}
	return abs, nil
}

// Require resolves and reads a module's source.
func (r *Resolver) Require(name string) (string, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return "", err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrModuleNotFound, name, err)
	}
	return string(src), nil
}
