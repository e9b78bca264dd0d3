// Package wizard implements the interactive flow behind a bare "stackgen new":
// numbered menus and validated text prompts on stdin/stdout that build up a
// scaffold request. All I/O goes through the supplied reader and writer so the
// flow is fully scriptable in tests.
package wizard

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stackgen-labs/stackgen/internal/scaffold"
)

// Defaults pre-fills prompts; empty answers accept them.
type Defaults struct {
	PythonVersion string
	NodeVersion   string
	BackendDir    string
	FrontendDir   string
}

// maxAttempts bounds each validation loop so a closed or hostile stdin
// cannot spin forever.
const maxAttempts = 5

var kinds = []scaffold.Kind{scaffold.KindPython, scaffold.KindNextJS, scaffold.KindFullstack}

var kindLabels = []string{
	"python     - Python project managed with uv",
	"nextjs     - Next.js app via create-next-app",
	"fullstack  - monorepo with Python backend and Next.js frontend",
}

// Run walks the user through project type, name, and version selection and
// returns the resulting request. The request's Dir is left empty for the
// caller to resolve.
func Run(r io.Reader, w io.Writer, d Defaults) (*scaffold.Request, error) {
	reader := bufio.NewReader(r)

	idx, err := selectFromList(reader, w, "Select project type:", kindLabels)
	if err != nil {
		return nil, err
	}
	kind := kinds[idx]

	name, err := promptValidated(reader, w, "Project name", func(s string) error {
		return scaffold.ValidateName(s)
	})
	if err != nil {
		return nil, err
	}

	req := &scaffold.Request{
		Name:    name,
		Kind:    kind,
		Git:     true,
		Install: true,
	}

	if kind == scaffold.KindPython || kind == scaffold.KindFullstack {
		req.PythonVersion, err = promptDefault(reader, w, "Python version", d.PythonVersion)
		if err != nil {
			return nil, err
		}
	}
	if kind == scaffold.KindNextJS || kind == scaffold.KindFullstack {
		req.NodeVersion, err = promptDefault(reader, w, "Node version (for .nvmrc)", d.NodeVersion)
		if err != nil {
			return nil, err
		}
	}

	if kind == scaffold.KindFullstack {
		req.BackendDir, err = promptValidatedDefault(reader, w, "Backend directory", d.BackendDir, scaffold.ValidateName)
		if err != nil {
			return nil, err
		}
		req.FrontendDir, err = promptValidatedDefault(reader, w, "Frontend directory", d.FrontendDir, scaffold.ValidateName)
		if err != nil {
			return nil, err
		}
	}

	req.Git, err = promptYesNo(reader, w, "Initialize a git repository?", true)
	if err != nil {
		return nil, err
	}
	req.Install, err = promptYesNo(reader, w, "Install dependencies now?", true)
	if err != nil {
		return nil, err
	}

	return req, nil
}

// selectFromList presents a numbered menu and re-prompts until the answer is
// a valid index.
func selectFromList(reader *bufio.Reader, w io.Writer, prompt string, items []string) (int, error) {
	fmt.Fprintf(w, "\n%s\n", prompt)
	for i, item := range items {
		fmt.Fprintf(w, "  %d) %s\n", i+1, item)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(w, "Enter number [1-%d]: ", len(items))

		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("reading selection: %w", err)
		}

		num, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || num < 1 || num > len(items) {
			fmt.Fprintf(w, "Invalid selection %q: choose 1-%d\n", strings.TrimSpace(line), len(items))
			continue
		}
		return num - 1, nil
	}
	return 0, fmt.Errorf("no valid selection after %d attempts", maxAttempts)
}

// promptValidated asks for a value until validate accepts it.
func promptValidated(reader *bufio.Reader, w io.Writer, label string, validate func(string) error) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(w, "%s: ", label)

		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}

		value := strings.TrimSpace(line)
		if err := validate(value); err != nil {
			fmt.Fprintf(w, "%v\n", err)
			continue
		}
		return value, nil
	}
	return "", fmt.Errorf("no valid %s after %d attempts", strings.ToLower(label), maxAttempts)
}

// promptDefault asks for a value; an empty answer accepts the default.
func promptDefault(reader *bufio.Reader, w io.Writer, label, def string) (string, error) {
	fmt.Fprintf(w, "%s [%s]: ", label, def)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return def, nil
	}
	return value, nil
}

// promptValidatedDefault combines a default with a validation loop.
func promptValidatedDefault(reader *bufio.Reader, w io.Writer, label, def string, validate func(string) error) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value, err := promptDefault(reader, w, label, def)
		if err != nil {
			return "", err
		}
		if err := validate(value); err != nil {
			fmt.Fprintf(w, "%v\n", err)
			continue
		}
		return value, nil
	}
	return "", fmt.Errorf("no valid %s after %d attempts", strings.ToLower(label), maxAttempts)
}

// promptYesNo asks a y/n question; an empty answer accepts the default.
func promptYesNo(reader *bufio.Reader, w io.Writer, label string, def bool) (bool, error) {
	hint := "Y/n"
	if !def {
		hint = "y/N"
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(w, "%s [%s]: ", label, hint)

		line, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintf(w, "Answer y or n\n")
		}
	}
	return false, fmt.Errorf("no valid answer after %d attempts", maxAttempts)
}
