// Package pipeline runs an ordered list of named scaffolding steps. Steps
// execute sequentially and the first failure aborts the run, mirroring the
// abort-on-first-error convention of the generated projects' tooling. There
// are no retries and no concurrency.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/stackgen-labs/stackgen/internal/style"
)

// Step is one unit of scaffolding work.
type Step interface {
	// Name is the short progress label shown while the step runs.
	Name() string
	Run(ctx context.Context) error
}

type funcStep struct {
	name string
	fn   func(ctx context.Context) error
}

func (s funcStep) Name() string                  { return s.name }
func (s funcStep) Run(ctx context.Context) error { return s.fn(ctx) }

// New wraps a function as a named Step.
func New(name string, fn func(ctx context.Context) error) Step {
	return funcStep{name: name, fn: fn}
}

// Runner executes steps in order, printing progress to Out.
type Runner struct {
	Out    io.Writer
	Styles *style.Styles
}

// NewRunner returns a Runner writing progress to w.
func NewRunner(w io.Writer, styles *style.Styles) *Runner {
	if styles == nil {
		styles = style.PlainStyles()
	}
	return &Runner{Out: w, Styles: styles}
}

// Run executes each step in order and stops at the first failure. The
// returned error names the failed step.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	total := len(steps)
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("aborted before step %q: %w", step.Name(), err)
		}

		fmt.Fprintf(r.Out, "%s %s\n",
			r.Styles.Step.Render(fmt.Sprintf("[%d/%d]", i+1, total)),
			step.Name())

		if err := step.Run(ctx); err != nil {
			fmt.Fprintf(r.Out, "%s %s\n",
				r.Styles.Error.Render("FAIL"), step.Name())
			return fmt.Errorf("step %q: %w", step.Name(), err)
		}
	}
	return nil
}
