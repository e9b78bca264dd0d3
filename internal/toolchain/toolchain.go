package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Output captures the result of one tool invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. The production implementation is
// ExecRunner; tests substitute fakes.
type Runner interface {
	// Run executes name with args in dir (empty dir means the current
	// directory). A non-zero exit status is reported in Output, not as an
	// error; the error covers lookup and start failures.
	Run(ctx context.Context, dir, name string, args ...string) (*Output, error)

	// LookPath reports the resolved path of a binary, or an error if it is
	// not installed.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec, streaming output to the configured
// writers while also capturing it.
type ExecRunner struct {
	// Stdout and Stderr default to os.Stdout/os.Stderr when nil.
	Stdout io.Writer
	Stderr io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (*Output, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s is not installed: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err = cmd.Run()

	out := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("running %s: %w", name, err)
	}

	return out, nil
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Require checks that every named binary is installed. It reports all missing
// tools at once rather than stopping at the first.
func Require(runner Runner, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, err := runner.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required tools not found on PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}

// run invokes a tool and converts a non-zero exit into an error carrying the
// tool's stderr, the failure mode pipeline steps care about.
func run(ctx context.Context, runner Runner, dir, name string, args ...string) (*Output, error) {
	out, err := runner.Run(ctx, dir, name, args...)
	if err != nil {
		return nil, err
	}
	if out.ExitCode != 0 {
		detail := strings.TrimSpace(out.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(out.Stdout)
		}
		if detail != "" {
			return out, fmt.Errorf("%s exited with status %d: %s", name, out.ExitCode, detail)
		}
		return out, fmt.Errorf("%s exited with status %d", name, out.ExitCode)
	}
	return out, nil
}
