package toolkit

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// IO groups the filesystem helpers available to scripts.
type IO struct{}

// MkdirP creates dir and any missing parents.
func (IO) MkdirP(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrToolkit, dir, err)
	}
	return nil
}

// RmRF removes path recursively. Removing a missing path is not an error.
func (IO) RmRF(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrToolkit, path, err)
	}
	return nil
}

// Mv renames src to dst, creating the destination directory when needed.
func (i IO) Mv(src, dst string) error {
	if err := i.MkdirP(filepath.Dir(dst)); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("%w: move %s: %w", ErrToolkit, src, err)
	}
	return nil
}

// Cp copies a regular file, preserving its permission bits.
func (i IO) Cp(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: copy %s: %w", ErrToolkit, src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: copy %s: %w", ErrToolkit, src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: copy %s: source is a directory", ErrToolkit, src)
	}
	if err := i.MkdirP(filepath.Dir(dst)); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("%w: copy %s: %w", ErrToolkit, dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: copy %s: %w", ErrToolkit, dst, err)
	}
	return out.Close()
}

// Which resolves a tool on PATH.
func (IO) Which(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotFound, tool, err)
	}
	return path, nil
}
