package toolchain

import (
	"context"
	"fmt"
	"strings"
)

// UV drives the uv Python package manager.
type UV struct {
	Runner Runner
}

// Init runs `uv init` in dir, pinning the interpreter when pythonVersion is
// non-empty. uv writes pyproject.toml, .python-version, and a hello module.
func (u *UV) Init(ctx context.Context, dir, pythonVersion string) error {
	args := []string{"init"}
	if pythonVersion != "" {
		args = append(args, "--python", pythonVersion)
	}
	if _, err := run(ctx, u.Runner, dir, "uv", args...); err != nil {
		return fmt.Errorf("uv init: %w", err)
	}
	return nil
}

// Sync runs `uv sync` in dir, creating the virtualenv and lock file.
func (u *UV) Sync(ctx context.Context, dir string) error {
	if _, err := run(ctx, u.Runner, dir, "uv", "sync"); err != nil {
		return fmt.Errorf("uv sync: %w", err)
	}
	return nil
}

// AddDev installs development dependencies into the project.
func (u *UV) AddDev(ctx context.Context, dir string, packages ...string) error {
	if len(packages) == 0 {
		return nil
	}
	args := append([]string{"add", "--dev"}, packages...)
	if _, err := run(ctx, u.Runner, dir, "uv", args...); err != nil {
		return fmt.Errorf("uv add --dev %s: %w", strings.Join(packages, " "), err)
	}
	return nil
}

// Version reports the installed uv version string.
func (u *UV) Version(ctx context.Context) (string, error) {
	out, err := run(ctx, u.Runner, "", "uv", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Stdout), nil
}
