package toolchain

import (
	"context"
	"fmt"
)

// Git drives the local git binary.
type Git struct {
	Runner Runner
}

// Init creates a repository in dir.
func (g *Git) Init(ctx context.Context, dir string) error {
	if _, err := run(ctx, g.Runner, dir, "git", "init"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// InitialCommit stages everything in dir and records the first commit.
func (g *Git) InitialCommit(ctx context.Context, dir, message string) error {
	if _, err := run(ctx, g.Runner, dir, "git", "add", "-A"); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	if _, err := run(ctx, g.Runner, dir, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}
