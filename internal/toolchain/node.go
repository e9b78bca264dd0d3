package toolchain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinNodeVersion is the oldest Node.js release create-next-app supports.
const MinNodeVersion = "18.18.0"

// Node drives the local Node.js installation and npx.
type Node struct {
	Runner Runner
}

// Version reports the installed Node.js version without the "v" prefix.
func (n *Node) Version(ctx context.Context) (string, error) {
	out, err := run(ctx, n.Runner, "", "node", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(out.Stdout), "v"), nil
}

// CheckMinimum verifies the installed Node.js is at least MinNodeVersion.
func (n *Node) CheckMinimum(ctx context.Context) error {
	installed, err := n.Version(ctx)
	if err != nil {
		return err
	}

	iv, err := semver.NewVersion(installed)
	if err != nil {
		return fmt.Errorf("parsing node version %q: %w", installed, err)
	}
	min := semver.MustParse(MinNodeVersion)
	if iv.LessThan(min) {
		return fmt.Errorf("node %s is too old: create-next-app requires >= %s", installed, MinNodeVersion)
	}
	return nil
}

// CreateNextAppOptions configures the generated Next.js application.
type CreateNextAppOptions struct {
	TypeScript bool
	ESLint     bool
	Tailwind   bool
	AppRouter  bool
	SkipGit    bool // fullstack roots manage git themselves
	SkipNPM    bool // honor --no-install
}

// CreateNextApp scaffolds a Next.js app named name under parentDir by running
// create-next-app through npx with all prompts answered via flags.
func (n *Node) CreateNextApp(ctx context.Context, parentDir, name string, opts CreateNextAppOptions) error {
	args := []string{"--yes", "create-next-app@latest", name, "--src-dir", "--import-alias", "@/*"}

	args = append(args, boolFlag("ts", "js", opts.TypeScript)...)
	args = append(args, boolFlag("eslint", "no-eslint", opts.ESLint)...)
	args = append(args, boolFlag("tailwind", "no-tailwind", opts.Tailwind)...)
	args = append(args, boolFlag("app", "no-app", opts.AppRouter)...)
	if opts.SkipGit {
		args = append(args, "--disable-git")
	}
	if opts.SkipNPM {
		args = append(args, "--skip-install")
	} else {
		args = append(args, "--use-npm")
	}

	if _, err := run(ctx, n.Runner, parentDir, "npx", args...); err != nil {
		return fmt.Errorf("create-next-app: %w", err)
	}
	return nil
}

func boolFlag(on, off string, v bool) []string {
	if v {
		return []string{"--" + on}
	}
	return []string{"--" + off}
}
